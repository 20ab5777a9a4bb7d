// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/config"
	"github.com/centralbureau/tabulator/internal/logging"
	"github.com/centralbureau/tabulator/internal/repository"
	"github.com/centralbureau/tabulator/internal/user"
)

// dummyHash is verified, and discarded, whenever Login cannot find the
// supplied username, so a lookup miss costs about the same wall-clock
// time as a wrong password on a real account.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$c21hbGxzYWx0MTIzNDU2$ZHVtbXlkdW1teWR1bW15ZHVtbXlkdW1teWR1bW15ZHU"

// Session is the result of a successful Login or Validate: the opaque
// key the caller must set as a cookie, the authenticated user, and the
// key's current expiry.
type Session struct {
	Key       string
	User      user.User
	ExpiresAt time.Time
}

// Service implements local credential authentication and session
// management (see package doc).
type Service struct {
	db       *repository.DB
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	cfg      config.SecurityConfig
	argon2   user.Argon2Params
	throttle *attemptLimiter
}

// NewService builds a Service from the repositories it drives and the
// security configuration controlling lockout, session lifetime, and
// Argon2id cost.
func NewService(db *repository.DB, users *repository.UserRepository, sessions *repository.SessionRepository, cfg config.SecurityConfig) *Service {
	return &Service{
		db:       db,
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		argon2: user.Argon2Params{
			Memory:      cfg.Argon2MemoryKiB,
			Iterations:  cfg.Argon2Iterations,
			Parallelism: cfg.Argon2Parallelism,
			SaltLength:  user.DefaultArgon2Params.SaltLength,
			KeyLength:   user.DefaultArgon2Params.KeyLength,
		},
		throttle: newAttemptLimiter(),
	}
}

// Initialised reports whether any user account has been provisioned.
func (s *Service) Initialised(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BootstrapFirstAdmin provisions the first administrator account. It
// fails with ErrAlreadyInitialised once any account exists; this is the
// only path that ever creates a user without NeedsPasswordChange set,
// since there is no other administrator yet to have assigned one.
func (s *Service) BootstrapFirstAdmin(ctx context.Context, username, password string) (user.User, error) {
	initialised, err := s.Initialised(ctx)
	if err != nil {
		return user.User{}, err
	}
	if initialised {
		return user.User{}, ErrAlreadyInitialised
	}

	if err := user.ValidatePassword(password, username, false); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrPasswordPolicy, err)
	}
	hash, err := user.HashPassword(password, s.argon2)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	candidate := user.User{
		Username:            username,
		Role:                user.RoleAdministrator,
		PasswordHash:        hash,
		NeedsPasswordChange: false,
	}

	var created user.User
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		created, txErr = s.users.Create(ctx, tx, candidate)
		if txErr != nil {
			return txErr
		}
		return s.appendEvent(ctx, tx, audit.EventUserCreated, created, "", "first administrator account provisioned")
	})
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

// Login authenticates username and password and, on success, opens a
// new session bound to userAgent and sourceAddress. See the package doc
// for the constant-time and lockout guarantees this method upholds.
func (s *Service) Login(ctx context.Context, username, password, userAgent, sourceAddress string) (Session, error) {
	normalized := strings.ToLower(username)
	if !s.throttle.allow(normalized) {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		_, _ = user.VerifyPassword(password, dummyHash)
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up user: %w", err)
	}

	attempts, lockedUntil, err := s.users.LockState(ctx, u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("load lock state: %w", err)
	}
	locked := lockedUntil != nil && time.Now().Before(*lockedUntil)

	ok, verr := user.VerifyPassword(password, u.PasswordHash)
	if verr != nil {
		ok = false
	}

	if locked {
		return Session{}, ErrAccountLocked
	}
	if !ok {
		attempts++
		var lockUntil *time.Time
		if attempts >= s.cfg.LockoutMaxAttempts {
			until := time.Now().Add(s.cfg.LockoutDuration)
			lockUntil = &until
		}
		txErr := s.db.WithTx(ctx, func(tx *sql.Tx) error {
			return s.users.RecordFailedAttempt(ctx, tx, u.ID, attempts, lockUntil)
		})
		if txErr != nil {
			logging.Error().Err(txErr).Int64("user_id", u.ID).Msg("failed to record failed login attempt")
		}
		return Session{}, ErrInvalidCredentials
	}

	sess := repository.Session{
		ID:            uuid.New().String(),
		UserID:        u.ID,
		UserAgent:     userAgent,
		SourceAddress: sourceAddress,
		ExpiresAt:     time.Now().Add(s.cfg.SessionLifetime),
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.ClearLockState(ctx, tx, u.ID); err != nil {
			return err
		}
		if _, err := s.sessions.DeleteExpired(ctx, tx); err != nil {
			return err
		}
		if err := s.sessions.Create(ctx, tx, sess); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, audit.EventUserLoggedIn, u, sourceAddress, "")
	})
	if err != nil {
		return Session{}, fmt.Errorf("open session: %w", err)
	}

	return Session{Key: sess.ID, User: u, ExpiresAt: sess.ExpiresAt}, nil
}

// Logout deletes the session identified by key.
func (s *Service) Logout(ctx context.Context, key string) error {
	sess, err := s.sessions.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.sessions.Delete(ctx, tx, key); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, audit.EventUserLoggedOut, u, sess.SourceAddress, "")
	})
}

// Validate checks key against userAgent and sourceAddress and, if
// valid, returns the session and the user it belongs to. A session
// within SessionExtensionThreshold of expiry is extended to a fresh
// full SessionLifetime, recording exactly one audit event, unless
// doNotExtend is set.
func (s *Service) Validate(ctx context.Context, key, userAgent, sourceAddress string, doNotExtend bool) (Session, error) {
	sess, err := s.sessions.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		return Session{}, ErrSessionNotFound
	}
	if sess.UserAgent != userAgent || sess.SourceAddress != sourceAddress {
		return Session{}, ErrSessionNotFound
	}

	u, err := s.users.Get(ctx, sess.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session user: %w", err)
	}

	if !doNotExtend && time.Until(sess.ExpiresAt) < s.cfg.SessionExtensionThreshold {
		newExpiry := time.Now().Add(s.cfg.SessionLifetime)
		err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
			if err := s.sessions.Extend(ctx, tx, key, newExpiry); err != nil {
				return err
			}
			return s.appendEvent(ctx, tx, audit.EventUserSessionExtended, u, sess.SourceAddress, "")
		})
		if err != nil {
			logging.Error().Err(err).Str("session_id", key).Msg("failed to extend session")
		} else {
			sess.ExpiresAt = newExpiry
		}
	}

	return Session{Key: sess.ID, User: u, ExpiresAt: sess.ExpiresAt}, nil
}

// ChangePassword verifies currentPassword against the stored hash, then
// validates and applies newPassword.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	ok, verr := user.VerifyPassword(currentPassword, u.PasswordHash)
	if verr != nil || !ok {
		return ErrWrongCurrentPassword
	}

	previousMatches, _ := user.VerifyPassword(newPassword, u.PasswordHash)
	if err := user.ValidatePassword(newPassword, u.Username, previousMatches); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordPolicy, err)
	}

	hash, err := user.HashPassword(newPassword, s.argon2)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.UpdatePassword(ctx, tx, userID, hash, false); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, audit.EventUserPasswordChanged, u, "", "")
	})
}

// SweepThrottle drops per-account attempt limiter entries untouched for
// an hour. No background service in this process calls it.
func (s *Service) SweepThrottle() {
	s.throttle.sweep(time.Hour)
}

func (s *Service) appendEvent(ctx context.Context, tx *sql.Tx, eventType audit.EventType, u user.User, sourceAddress, message string) error {
	event := &audit.Event{
		Type:          eventType,
		Level:         audit.LevelInfo,
		Message:       message,
		SourceAddress: sourceAddress,
		Actor: audit.ActorSnapshot{
			UserID:   u.ID,
			Username: u.Username,
			Role:     string(u.Role),
		},
	}
	if u.FullName != nil {
		event.Actor.FullName = *u.FullName
	}
	return s.db.Audit.Tx(tx).Append(ctx, event)
}
