// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package auth implements local credential authentication and session
management against internal/user and internal/repository.

# Login

Login is constant-time with respect to which of "unknown username" or
"wrong password" occurred: both return ErrInvalidCredentials, and a
lookup miss still runs a dummy Argon2id verification so the two paths
take comparable time. Usernames are matched case-insensitively.

# Lockout

Repeated failures lock an account for a configured duration; a
successful login clears the lock state. Locked accounts return
ErrAccountLocked regardless of whether the supplied password was
correct, since revealing that distinction would leak which branch was
taken.

# Sessions

A session binds its opaque key to the user-agent and source address
that created it; Validate fails closed on any mismatch. Sessions carry
a fixed lifetime and are extended on each authenticated request once
less than the configured extension threshold remains, unless the
request carries DO_NOT_EXTEND_SESSION. Expired sessions are deleted
lazily on login (see Service.Login) and periodically by
internal/supervisor/services.SessionSweepService.

# needs_password_change

A user created with NeedsPasswordChange set can authenticate, but
Service callers (internal/api) must restrict such a session to the
password-change endpoint only; this package surfaces the flag on
Session but does not itself gate routes.
*/
package auth
