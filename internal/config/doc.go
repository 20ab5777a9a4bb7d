// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package config provides centralized configuration loading for the
tabulator server.

# Configuration sources

Configuration is layered, highest priority wins:

	Environment variables > Config file (YAML) > Built-in defaults

# Sections

  - Database: the DuckDB file path.
  - Server: listen host/port and HTTP timeouts.
  - Security: Argon2id parameters, session lifetime/extension, lockout
    policy, SECURE_COOKIES.
  - Airgap: probe interval and the AIRGAP_DETECTION=false test escape.
  - Logging: level/format for internal/logging.

# Environment variables

	DATABASE_PATH                  DuckDB file path (default: tabulator.duckdb)
	SERVER_HOST                    Bind address (default: 0.0.0.0)
	SERVER_PORT                    Listen port (default: 8080)
	SECURE_COOKIES                 Mark session cookies Secure (default: true)
	SESSION_LIFETIME               Fixed session lifetime (default: 30m)
	SESSION_EXTENSION_THRESHOLD    Extend when remaining lifetime is below this (default: 5m)
	LOCKOUT_MAX_ATTEMPTS           Failed attempts before lockout (default: 5)
	LOCKOUT_DURATION               Lockout duration (default: 15m)
	ARGON2_MEMORY_KIB              Argon2id memory parameter in KiB (default: 19456)
	ARGON2_ITERATIONS              Argon2id time parameter (default: 2)
	ARGON2_PARALLELISM             Argon2id parallelism parameter (default: 1)
	AIRGAP_PROBE_INTERVAL          Probe cycle interval (default: 60s)
	AIRGAP_DETECTION               Set to false to disable the monitor in tests (default: true)
	LOG_LEVEL                      trace, debug, info, warn, error (default: info)
	LOG_FORMAT                     json or console (default: json)

Validation happens once, in Load, so a malformed configuration fails at
startup rather than at first request.
*/
package config
