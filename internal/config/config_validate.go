// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package config

import "fmt"

// Validate checks that the loaded configuration is internally consistent.
// Called once, at startup, so a malformed configuration fails fast.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateAirgap()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.SessionLifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME must be positive")
	}
	if c.Security.SessionExtensionThreshold <= 0 || c.Security.SessionExtensionThreshold >= c.Security.SessionLifetime {
		return fmt.Errorf("SESSION_EXTENSION_THRESHOLD must be positive and less than SESSION_LIFETIME")
	}
	if c.Security.LockoutMaxAttempts < 1 {
		return fmt.Errorf("LOCKOUT_MAX_ATTEMPTS must be at least 1")
	}
	if c.Security.Argon2MemoryKiB < 8*1024 {
		return fmt.Errorf("ARGON2_MEMORY_KIB must be at least 8192 (8 MiB)")
	}
	if c.Security.Argon2Iterations < 1 {
		return fmt.Errorf("ARGON2_ITERATIONS must be at least 1")
	}
	if c.Security.Argon2Parallelism < 1 {
		return fmt.Errorf("ARGON2_PARALLELISM must be at least 1")
	}
	return nil
}

func (c *Config) validateAirgap() error {
	if c.Airgap.ProbeInterval <= 0 {
		return fmt.Errorf("AIRGAP_PROBE_INTERVAL must be positive")
	}
	return nil
}
