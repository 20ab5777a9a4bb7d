// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package main is the entry point for the tabulator server: the core of a
municipal central counting bureau's election-results tabulation platform.
It reconciles two independent manual keyings of each polling station's
tally sheet, validates them, runs statutory seat apportionment, and
produces an auditable, reproducible results protocol. It is designed to
run on an air-gapped appliance.

# Application architecture

The server runs a thejerf/suture v4 supervisor tree alongside the HTTP
listener:

	SupervisorTree
	├── air-gap monitor (background): periodic offline-proof probing
	├── session sweep (background): expired-session garbage collection
	└── HTTP server (API): chi router, gated by the air-gap admission check

Startup order:

 1. Configuration: Koanf v2, environment variables over a config file over defaults
 2. Logging: zerolog, JSON or console
 3. Database: single-file DuckDB, schema migration on open
 4. Repositories: one per aggregate (users, elections, polling stations,
    committee sessions, data entries, investigations, blobs)
 5. Auth service and Casbin-backed authorization enforcer
 6. Air-gap detector (or its no-op test double)
 7. HTTP server wrapped for supervision
 8. Supervisor tree start; blocks until SIGINT/SIGTERM

# Configuration

Environment variables (see internal/config):

	CONFIG_PATH                 path to an optional YAML config file
	DATABASE_PATH                DuckDB file path
	SERVER_PORT                  HTTP listen port
	SECURE_COOKIES               require HTTPS-only session cookies
	AIRGAP_DETECTION=false       disable the air-gap monitor (tests only)
	LOG_LEVEL, LOG_FORMAT        zerolog level and output mode

# Air-gap enforcement

internal/airgap runs a probe cycle every AIRGAP_PROBE_INTERVAL (default
60s) attempting outbound TCP and DNS lookups against hard-coded
addresses; any success latches a violation flag that the HTTP admission
gate uses to reject non-static requests with 503 until the flag clears
or the probe loop itself goes stale.

# Signal handling

SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
accepting new connections, in-flight requests get a bounded grace
period, and the supervisor tree reports any service that failed to stop
within its timeout before the process exits.

# See also

  - internal/api: HTTP routing and handlers
  - internal/dataentry, internal/committeesession: the two state machines
  - internal/apportionment: statutory seat assignment
  - internal/audit: the append-only event log
  - internal/artifact: the PDF-rendering and archive-packaging boundary
*/
package main
