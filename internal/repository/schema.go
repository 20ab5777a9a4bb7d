// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"fmt"
	"strings"
)

// migrations is the ordered list of idempotent schema statements applied
// on every startup. DuckDB's "IF NOT EXISTS" forms make re-applying a
// prior migration a no-op, so the list only ever grows.
var migrations = []func(ctx context.Context, db *DB) error{
	createElectionsTable,
	createPollingStationsTable,
	createCommitteeSessionsTable,
	createDataEntriesTable,
	createInvestigationsTable,
	createUsersTable,
	createSessionsTable,
	createBlobsTable,
	func(ctx context.Context, db *DB) error { return db.Audit.CreateTable(ctx) },
}

func (db *DB) migrate(ctx context.Context) error {
	for i, m := range migrations {
		if err := m(ctx, db); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// execStatements runs each ";"-separated statement in schema in turn.
// DuckDB's driver executes one statement per call, so multi-statement
// schema blocks must be split before sending.
func execStatements(ctx context.Context, db *DB, schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func createElectionsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE SEQUENCE IF NOT EXISTS elections_id_seq;
		CREATE TABLE IF NOT EXISTS elections (
			id               BIGINT PRIMARY KEY DEFAULT nextval('elections_id_seq'),
			name             TEXT NOT NULL,
			category         TEXT NOT NULL,
			counting_method  TEXT NOT NULL,
			election_date    DATE NOT NULL,
			nomination_date  DATE,
			number_of_seats  INTEGER NOT NULL,
			number_of_voters INTEGER NOT NULL,
			political_groups JSON NOT NULL
		);
	`)
}

func createPollingStationsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE SEQUENCE IF NOT EXISTS polling_stations_id_seq;
		CREATE TABLE IF NOT EXISTS polling_stations (
			id                    BIGINT PRIMARY KEY DEFAULT nextval('polling_stations_id_seq'),
			election_id           BIGINT NOT NULL REFERENCES elections(id),
			committee_session_id  BIGINT NOT NULL,
			id_prev_session       BIGINT,
			number                INTEGER NOT NULL,
			street                TEXT NOT NULL,
			house_number          TEXT NOT NULL,
			house_number_addition TEXT,
			postal_code           TEXT NOT NULL,
			locality              TEXT NOT NULL,
			number_of_voters      INTEGER,
			type                  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_polling_stations_session ON polling_stations(committee_session_id);
	`)
}

func createCommitteeSessionsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE SEQUENCE IF NOT EXISTS committee_sessions_id_seq;
		CREATE TABLE IF NOT EXISTS committee_sessions (
			id                    BIGINT PRIMARY KEY DEFAULT nextval('committee_sessions_id_seq'),
			election_id           BIGINT NOT NULL REFERENCES elections(id),
			number                INTEGER NOT NULL,
			location              TEXT NOT NULL,
			scheduled_start       TIMESTAMP,
			status                TEXT NOT NULL,
			results_xml_blob_id   BIGINT,
			results_pdf_blob_id   BIGINT,
			overview_pdf_blob_id  BIGINT
		);
		CREATE INDEX IF NOT EXISTS idx_committee_sessions_election ON committee_sessions(election_id);
	`)
}

// data_entries stores the full Status tagged union for one polling
// station in one committee session: every field dataentry.Status can
// hold, serialized where it is not a scalar. Unused fields for the
// current tag are simply empty JSON objects.
func createDataEntriesTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE TABLE IF NOT EXISTS data_entries (
			polling_station_id    BIGINT NOT NULL REFERENCES polling_stations(id),
			committee_session_id  BIGINT NOT NULL REFERENCES committee_sessions(id),
			tag                   TEXT NOT NULL,
			first_entry_user_id   BIGINT,
			second_entry_user_id  BIGINT,
			progress              INTEGER NOT NULL DEFAULT 0,
			entry                 JSON,
			client_state          JSON,
			finalised_first_entry JSON,
			first_entry           JSON,
			second_entry          JSON,
			finalised_entry       JSON,
			updated_at            TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (polling_station_id, committee_session_id)
		);
	`)
}

func createInvestigationsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE TABLE IF NOT EXISTS investigations (
			polling_station_id    BIGINT NOT NULL REFERENCES polling_stations(id),
			committee_session_id  BIGINT NOT NULL REFERENCES committee_sessions(id),
			reason                TEXT NOT NULL,
			findings              TEXT,
			corrected_results     BOOLEAN,
			concluded             BOOLEAN NOT NULL DEFAULT false,
			PRIMARY KEY (polling_station_id, committee_session_id)
		);
	`)
}

func createUsersTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE SEQUENCE IF NOT EXISTS users_id_seq;
		CREATE TABLE IF NOT EXISTS users (
			id                     BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username               TEXT NOT NULL UNIQUE,
			full_name              TEXT,
			role                   TEXT NOT NULL,
			password_hash          TEXT NOT NULL,
			needs_password_change  BOOLEAN NOT NULL DEFAULT false,
			locked_until           TIMESTAMPTZ,
			failed_attempts        INTEGER NOT NULL DEFAULT 0,
			last_activity_at       TIMESTAMPTZ,
			created_at             TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at             TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
}

// sessions binds each session to the user-agent and source address it
// was created with, per the session-binding requirement: a request
// presenting the session cookie from a different user-agent or address
// is rejected even though the cookie itself is valid.
func createSessionsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE TABLE IF NOT EXISTS sessions (
			id             TEXT PRIMARY KEY,
			user_id        BIGINT NOT NULL REFERENCES users(id),
			user_agent     TEXT NOT NULL,
			source_address TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at     TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
	`)
}

// blobs holds the produced EML-NL XML and PDF artifacts a committee
// session's *_blob_id columns reference.
func createBlobsTable(ctx context.Context, db *DB) error {
	return execStatements(ctx, db, `
		CREATE SEQUENCE IF NOT EXISTS blobs_id_seq;
		CREATE TABLE IF NOT EXISTS blobs (
			id           BIGINT PRIMARY KEY DEFAULT nextval('blobs_id_seq'),
			content      BLOB NOT NULL,
			content_type TEXT NOT NULL,
			sha256       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
}
