// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/centralbureau/tabulator/internal/logging"
)

// execer is satisfied by both *sql.DB and *sql.Tx, so Append can run
// against whichever one the caller is holding.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DuckDBStore implements Store on the embedded relational store, the
// authoritative audit log in production. Every append happens inside
// the caller's transaction, alongside the state mutation the event
// describes: repositories call db.Audit.Tx(tx).Append(...) rather than
// Append on the top-level store, since the database is opened with a
// single connection and a second ExecContext against *sql.DB while a
// transaction holds that connection open would block for the lifetime
// of the transaction.
type DuckDBStore struct {
	db execer
}

// NewDuckDBStore wraps db, which must already have had CreateTable
// applied (normally via the migrations list, not called directly).
func NewDuckDBStore(db *sql.DB) *DuckDBStore {
	return &DuckDBStore{db: db}
}

// Tx returns a DuckDBStore scoped to tx, for use inside a
// repository.DB.WithTx callback so the audit append commits atomically
// with the state change it describes.
func (s *DuckDBStore) Tx(tx *sql.Tx) *DuckDBStore {
	return &DuckDBStore{db: tx}
}

// CreateTable creates the audit_events table and its indexes if they do
// not already exist.
func (s *DuckDBStore) CreateTable(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id BIGINT PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			type TEXT NOT NULL,
			level TEXT NOT NULL,
			message TEXT,
			workstation_id TEXT,
			actor_user_id BIGINT NOT NULL,
			actor_username TEXT NOT NULL,
			actor_full_name TEXT,
			actor_role TEXT NOT NULL,
			source_address TEXT,
			payload JSON
		);
		CREATE SEQUENCE IF NOT EXISTS audit_events_id_seq;
		CREATE INDEX IF NOT EXISTS idx_audit_events_timestamp ON audit_events(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_audit_events_type ON audit_events(type);
		CREATE INDEX IF NOT EXISTS idx_audit_events_level ON audit_events(level);
		CREATE INDEX IF NOT EXISTS idx_audit_events_actor_user_id ON audit_events(actor_user_id);
	`
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create audit_events schema: %w", err)
		}
	}
	return nil
}

// Append inserts event using the shared id sequence, within whatever
// transaction the store's db carries (callers bind a *sql.Tx with Tx
// via the repository layer).
func (s *DuckDBStore) Append(ctx context.Context, event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload := []byte("null")
	if len(event.Payload) > 0 {
		payload = event.Payload
	}

	row := s.db.QueryRowContext(ctx, `SELECT nextval('audit_events_id_seq')`)
	if err := row.Scan(&event.ID); err != nil {
		return fmt.Errorf("allocate audit event id: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, timestamp, type, level, message, workstation_id,
			actor_user_id, actor_username, actor_full_name, actor_role,
			source_address, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID, event.Timestamp, string(event.Type), string(event.Level), event.Message, event.WorkstationID,
		event.Actor.UserID, event.Actor.Username, event.Actor.FullName, event.Actor.Role,
		event.SourceAddress, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// filterSetCondition builds an injection-safe set-membership predicate
// over a user-supplied array: the array is passed as a single JSON
// parameter rather than interpolated into the query text, and DuckDB's
// UNNEST over the parsed JSON list supplies the membership test.
func filterSetCondition[T ~string | ~int64](column string, values []T, args *[]any) string {
	if len(values) == 0 {
		return ""
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	*args = append(*args, string(encoded))
	return fmt.Sprintf("%s IN (SELECT UNNEST(CAST(json_transform(?, '[\"VARCHAR\"]') AS VARCHAR[])))", column)
}

func (s *DuckDBStore) buildFilter(filter QueryFilter) (string, []any) {
	var conditions []string
	var args []any

	if cond := filterSetCondition("type", filter.Types, &args); cond != "" {
		conditions = append(conditions, cond)
	}
	if cond := filterSetCondition("level", filter.Levels, &args); cond != "" {
		conditions = append(conditions, cond)
	}
	if cond := filterSetCondition("actor_user_id", filter.UserIDs, &args); cond != "" {
		conditions = append(conditions, cond)
	}
	if filter.Since != nil {
		op := ">="
		conditions = append(conditions, "timestamp "+op+" ?")
		args = append(args, *filter.Since)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

// Query returns events matching filter, paginated and ordered per
// QueryFilter's Ascending rule.
func (s *DuckDBStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	where, args := s.buildFilter(filter)
	order := "DESC"
	if filter.Ascending() {
		order = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT id, timestamp, type, level, message, workstation_id,
		       actor_user_id, actor_username, actor_full_name, actor_role,
		       source_address, CAST(payload AS VARCHAR)
		FROM audit_events%s
		ORDER BY timestamp %s
		LIMIT %d OFFSET %d
	`, where, order, filter.Limit(), filter.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var eventType, level, payload string
		if err := rows.Scan(&e.ID, &e.Timestamp, &eventType, &level, &e.Message, &e.WorkstationID,
			&e.Actor.UserID, &e.Actor.Username, &e.Actor.FullName, &e.Actor.Role,
			&e.SourceAddress, &payload); err != nil {
			logging.Warn().Err(err).Msg("failed to scan audit event row")
			continue
		}
		e.Type = EventType(eventType)
		e.Level = Level(level)
		if payload != "" && payload != "null" {
			e.Payload = json.RawMessage(payload)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of events matching filter, ignoring pagination.
func (s *DuckDBStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	where, args := s.buildFilter(filter)
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return count, nil
}

// ByUser lists one user's events, newest first, with the total matching
// count for pagination.
func (s *DuckDBStore) ByUser(ctx context.Context, userID int64, page, perPage int) ([]Event, int64, error) {
	filter := QueryFilter{UserIDs: []int64{userID}, Page: page, PerPage: perPage}
	total, err := s.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	events, err := s.Query(ctx, filter)
	return events, total, err
}
