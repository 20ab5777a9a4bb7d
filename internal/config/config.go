// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package config

import "time"

// Config is the root configuration for the tabulator server.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Airgap   AirgapConfig   `koanf:"airgap"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds the embedded store's connection settings.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds authentication, session, and password-hashing settings.
type SecurityConfig struct {
	SecureCookies bool `koanf:"secure_cookies"`

	// SessionLifetime is the fixed lifetime of a session from creation or
	// last extension (spec: 30 minutes).
	SessionLifetime time.Duration `koanf:"session_lifetime"`
	// SessionExtensionThreshold is how much lifetime must remain before a
	// session is extended on an authenticated request (spec: 5 minutes).
	SessionExtensionThreshold time.Duration `koanf:"session_extension_threshold"`

	LockoutMaxAttempts int           `koanf:"lockout_max_attempts"`
	LockoutDuration    time.Duration `koanf:"lockout_duration"`

	Argon2MemoryKiB   uint32 `koanf:"argon2_memory_kib"`
	Argon2Iterations  uint32 `koanf:"argon2_iterations"`
	Argon2Parallelism uint8  `koanf:"argon2_parallelism"`
}

// AirgapConfig holds the air-gap monitor's probe interval and test escape.
type AirgapConfig struct {
	ProbeInterval time.Duration `koanf:"probe_interval"`
	// Detection disables the monitor (Nop mode) when false. Defaults to
	// true; set AIRGAP_DETECTION=false only in tests.
	Detection bool `koanf:"detection"`
}

// LoggingConfig holds structured-logging settings for internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
