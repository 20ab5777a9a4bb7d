// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/user"
)

// CreateUser provisions a new account with the given initial password.
// The account is always created with NeedsPasswordChange set: an
// account provisioned by someone else is never trusted with its
// creator's choice of password past the first login.
func (s *Service) CreateUser(ctx context.Context, actor user.User, username, fullName string, role user.Role, password string) (user.User, error) {
	if err := user.ValidatePassword(password, username, false); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrPasswordPolicy, err)
	}
	hash, err := user.HashPassword(password, s.argon2)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	candidate := user.User{
		Username:            username,
		Role:                role,
		PasswordHash:        hash,
		NeedsPasswordChange: true,
	}
	if fullName != "" {
		candidate.FullName = &fullName
	}

	var created user.User
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		created, txErr = s.users.Create(ctx, tx, candidate)
		if txErr != nil {
			return txErr
		}
		return s.appendEvent(ctx, tx, audit.EventUserCreated, actor, "", "created account "+username)
	})
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

// UpdateUser overwrites the editable profile fields (full name, role)
// of an existing account.
func (s *Service) UpdateUser(ctx context.Context, actor user.User, id int64, fullName string, role user.Role) (user.User, error) {
	target, err := s.users.Get(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	target.Role = role
	if fullName != "" {
		target.FullName = &fullName
	} else {
		target.FullName = nil
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.Update(ctx, tx, target); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, audit.EventUserUpdated, actor, "", "updated account "+target.Username)
	})
	if err != nil {
		return user.User{}, err
	}
	return target, nil
}

// DeleteUser removes an account. The caller is responsible for
// rejecting self-deletion before calling this.
func (s *Service) DeleteUser(ctx context.Context, actor user.User, id int64) error {
	target, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, audit.EventUserDeleted, actor, "", "deleted account "+target.Username)
	})
}

// ListUsers returns every provisioned account.
func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

// GetUser fetches one account by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (user.User, error) {
	return s.users.Get(ctx, id)
}
