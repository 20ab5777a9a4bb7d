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
	"strings"
	"time"

	"github.com/centralbureau/tabulator/internal/user"
)

// ErrUsernameTaken is returned by Create when username already exists,
// compared case-insensitively.
var ErrUsernameTaken = errors.New("repository: username already taken")

// UserRepository persists user.User rows.
type UserRepository struct {
	db *DB
}

// NewUserRepository wraps db.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, full_name, role, password_hash, needs_password_change, last_activity_at"

func scanUser(row interface{ Scan(...any) error }) (user.User, error) {
	var (
		u              user.User
		fullName       sql.NullString
		lastActivityAt sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &fullName, &u.Role, &u.PasswordHash, &u.NeedsPasswordChange, &lastActivityAt); err != nil {
		return user.User{}, err
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	if lastActivityAt.Valid {
		u.LastActivityAt = &lastActivityAt.Time
	}
	return u, nil
}

// Get fetches one user by ID.
func (r *UserRepository) Get(ctx context.Context, id int64) (user.User, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches one user by case-insensitive username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE lower(username) = lower(?)", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, ErrNotFound
	}
	return u, err
}

// List returns every user, ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.conn.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create inserts u and returns it with ID populated. It reports
// ErrUsernameTaken if the username (case-insensitively) already exists.
func (r *UserRepository) Create(ctx context.Context, tx *sql.Tx, u user.User) (user.User, error) {
	var taken int
	if err := tx.QueryRowContext(ctx, "SELECT count(*) FROM users WHERE lower(username) = lower(?)", u.Username).Scan(&taken); err != nil {
		return user.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken > 0 {
		return user.User{}, ErrUsernameTaken
	}
	row := tx.QueryRowContext(ctx, `
		INSERT INTO users (username, full_name, role, password_hash, needs_password_change)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		u.Username, u.FullName, u.Role, u.PasswordHash, u.NeedsPasswordChange)
	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// Update overwrites the editable columns of an existing user: full
// name and role. Password changes go through UpdatePassword so a
// password-change audit event cannot be skipped by a caller that
// forgets to set it here.
func (r *UserRepository) Update(ctx context.Context, tx *sql.Tx, u user.User) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET full_name = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		u.FullName, u.Role, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdatePassword sets a new password hash and the needs-change flag,
// and clears any lockout: a password change is a legitimate proof of
// identity.
func (r *UserRepository) UpdatePassword(ctx context.Context, tx *sql.Tx, id int64, passwordHash string, needsPasswordChange bool) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, needs_password_change = ?, failed_attempts = 0, locked_until = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		passwordHash, needsPasswordChange, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return requireRowsAffected(res)
}

// RecordFailedAttempt sets the failed-login counter and, if lockUntil
// is non-nil, the lockout expiry.
func (r *UserRepository) RecordFailedAttempt(ctx context.Context, tx *sql.Tx, id int64, attempts int, lockUntil *time.Time) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET failed_attempts = ?, locked_until = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		attempts, nullableTime(lockUntil), id)
	if err != nil {
		return fmt.Errorf("record failed attempt: %w", err)
	}
	return requireRowsAffected(res)
}

// ClearLockState resets the failed-attempt counter and lock expiry and
// stamps last_activity_at, called on a successful authentication.
func (r *UserRepository) ClearLockState(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET failed_attempts = 0, locked_until = NULL, last_activity_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clear lock state: %w", err)
	}
	return requireRowsAffected(res)
}

// LockState returns the current failed-attempt count and lock expiry
// for a user, used by internal/auth's lockout policy.
func (r *UserRepository) LockState(ctx context.Context, id int64) (attempts int, lockedUntil *time.Time, err error) {
	var lu sql.NullTime
	row := r.db.conn.QueryRowContext(ctx, "SELECT failed_attempts, locked_until FROM users WHERE id = ?", id)
	if err := row.Scan(&attempts, &lu); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, ErrNotFound
		}
		return 0, nil, err
	}
	if lu.Valid {
		lockedUntil = &lu.Time
	}
	return attempts, lockedUntil, nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRowsAffected(res)
}

// Count returns the number of provisioned users, used to decide
// whether the system still needs first-run bootstrap.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	row := r.db.conn.QueryRowContext(ctx, "SELECT count(*) FROM users")
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "violates unique") ||
		strings.Contains(msg, "Duplicate key")
}
