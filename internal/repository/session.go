// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Session is one authenticated session row: an opaque key bound to a
// user-agent and source address, per the session-binding requirement
// in the authentication design (see internal/repository/schema.go).
type Session struct {
	ID            string
	UserID        int64
	UserAgent     string
	SourceAddress string
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// SessionRepository persists Session rows.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository wraps db.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, user_id, user_agent, source_address, created_at, expires_at"

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var s Session
	if err := row.Scan(&s.ID, &s.UserID, &s.UserAgent, &s.SourceAddress, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Get fetches a session by its opaque key.
func (r *SessionRepository) Get(ctx context.Context, id string) (Session, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return s, err
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, tx *sql.Tx, s Session) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, user_agent, source_address, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.UserAgent, s.SourceAddress, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Extend updates a session's expiry, used when a request arrives with
// less than the extension threshold of lifetime remaining and without
// a DO_NOT_EXTEND_SESSION header.
func (r *SessionRepository) Extend(ctx context.Context, tx *sql.Tx, id string, newExpiresAt time.Time) error {
	res, err := tx.ExecContext(ctx, "UPDATE sessions SET expires_at = ? WHERE id = ?", newExpiresAt, id)
	if err != nil {
		return fmt.Errorf("extend session: %w", err)
	}
	return requireRowsAffected(res)
}

// Delete removes one session by its opaque key, used on logout.
func (r *SessionRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry has passed,
// returning how many were swept. Called lazily on login and by the
// periodic sweep task.
func (r *SessionRepository) DeleteExpired(ctx context.Context, tx *sql.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP")
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAllForUser removes every session belonging to a user, used
// when an administrator deletes or locks an account out-of-band.
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("delete sessions for user: %w", err)
	}
	return nil
}
