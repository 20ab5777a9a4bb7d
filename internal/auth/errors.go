// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package auth

import "errors"

// Sentinel errors returned by Service methods. Login and Validate
// deliberately collapse several distinct internal causes into the same
// sentinel so a caller cannot distinguish, from the error alone,
// "no such user" from "wrong password" or "right key, wrong browser"
// from "expired".
var (
	// ErrInvalidCredentials covers unknown username and wrong password
	// alike.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrAccountLocked is returned instead of ErrInvalidCredentials once
	// an account has accumulated too many failed attempts, regardless of
	// whether the supplied password was in fact correct.
	ErrAccountLocked = errors.New("auth: account locked")

	// ErrSessionNotFound covers an unknown session key, an expired
	// session, and a session presented from the wrong user-agent or
	// source address: Validate fails closed the same way in all three
	// cases.
	ErrSessionNotFound = errors.New("auth: session not found or expired")

	// ErrPasswordPolicy is returned by ChangePassword when the new
	// password fails internal/user.ValidatePassword; the caller should
	// surface the wrapped policy error to the client.
	ErrPasswordPolicy = errors.New("auth: password does not meet policy")

	// ErrWrongCurrentPassword is returned by ChangePassword when the
	// caller-supplied current password does not verify.
	ErrWrongCurrentPassword = errors.New("auth: current password incorrect")

	// ErrAlreadyInitialised is returned by BootstrapFirstAdmin once any
	// user already exists.
	ErrAlreadyInitialised = errors.New("auth: system already initialised")
)
