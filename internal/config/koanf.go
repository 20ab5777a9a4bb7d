// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where a config file is searched for,
// in priority order. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tabulator/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every field at its documented default.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "tabulator.duckdb",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			SecureCookies:             true,
			SessionLifetime:           30 * time.Minute,
			SessionExtensionThreshold: 5 * time.Minute,
			LockoutMaxAttempts:        5,
			LockoutDuration:           15 * time.Minute,
			Argon2MemoryKiB:           19 * 1024,
			Argon2Iterations:          2,
			Argon2Parallelism:         1,
		},
		Airgap: AirgapConfig{
			ProbeInterval: 60 * time.Second,
			Detection:     true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration layered from defaults, an optional YAML file,
// and environment variables (environment wins).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path := configFilePath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", "__", envTransform), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// configFilePath resolves the config file to use, if any.
func configFilePath() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps flat uppercase environment variable names
// (DATABASE_PATH, SESSION_LIFETIME, AIRGAP_DETECTION, ...) onto the
// dotted koanf keys the Config struct tags declare.
func envTransform(key, value string) (string, interface{}) {
	mapped, ok := envKeyMap[key]
	if !ok {
		return "", nil
	}
	return mapped, value
}

var envKeyMap = map[string]string{
	"DATABASE_PATH":               "database.path",
	"SERVER_HOST":                 "server.host",
	"SERVER_PORT":                 "server.port",
	"SERVER_READ_TIMEOUT":         "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":        "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":         "server.idle_timeout",
	"SERVER_SHUTDOWN_TIMEOUT":     "server.shutdown_timeout",
	"SECURE_COOKIES":              "security.secure_cookies",
	"SESSION_LIFETIME":            "security.session_lifetime",
	"SESSION_EXTENSION_THRESHOLD": "security.session_extension_threshold",
	"LOCKOUT_MAX_ATTEMPTS":        "security.lockout_max_attempts",
	"LOCKOUT_DURATION":            "security.lockout_duration",
	"ARGON2_MEMORY_KIB":           "security.argon2_memory_kib",
	"ARGON2_ITERATIONS":           "security.argon2_iterations",
	"ARGON2_PARALLELISM":          "security.argon2_parallelism",
	"AIRGAP_PROBE_INTERVAL":       "airgap.probe_interval",
	"AIRGAP_DETECTION":            "airgap.detection",
	"LOG_LEVEL":                   "logging.level",
	"LOG_FORMAT":                  "logging.format",
}
