// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"errors"
	"net/http"

	"github.com/centralbureau/tabulator/internal/auth"
	"github.com/centralbureau/tabulator/internal/authz"
	"github.com/centralbureau/tabulator/internal/user"
)

const sessionCookieName = "session"

// doNotExtendHeader, when present with any value, suppresses the
// session-extension side effect of a successful Validate call.
const doNotExtendHeader = "DO_NOT_EXTEND_SESSION"

func setSessionCookie(w http.ResponseWriter, secure bool, sess auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Key,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// authenticate validates the session cookie and, on success, stores the
// resulting auth.Session in the request context; otherwise it rejects
// the request with 401 and never calls next.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			writeUnauthenticated(w)
			return
		}

		doNotExtend := r.Header.Get(doNotExtendHeader) != ""
		sess, err := s.auth.Validate(r.Context(), cookie.Value, r.UserAgent(), sourceAddress(r), doNotExtend)
		if errors.Is(err, auth.ErrSessionNotFound) {
			clearSessionCookie(w, s.cfg.SecureCookies)
			writeUnauthenticated(w)
			return
		}
		if err != nil {
			writeInternal(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), sess)))
	})
}

// requirePasswordCurrent blocks every route except the password-change
// endpoint for a session whose user still has NeedsPasswordChange set.
func (s *Server) requirePasswordCurrent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok {
			writeUnauthenticated(w)
			return
		}
		if sess.User.NeedsPasswordChange {
			writeForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole rejects the request unless allowed(role) is true for the
// session's user.
func requireRole(allowed func(user.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessionFromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}
			if !allowed(sess.User.Role) {
				writeForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireAdministrator() func(http.Handler) http.Handler {
	return requireRole(func(r user.Role) bool { return r == user.RoleAdministrator })
}

func requireCoordinator() func(http.Handler) http.Handler {
	return requireRole(func(r user.Role) bool { return r == user.RoleCoordinator })
}

func requireTypist() func(http.Handler) http.Handler {
	return requireRole(func(r user.Role) bool { return r == user.RoleTypist })
}

func requireCanManageUsers(enf *authz.Enforcer) func(http.Handler) http.Handler {
	return requireRole(enf.CanManageUsers)
}

func requireCanReadAuditLog(enf *authz.Enforcer) func(http.Handler) http.Handler {
	return requireRole(enf.CanReadAuditLog)
}

// sourceAddress extracts the client address a session is bound to,
// preferring the value chi's RealIP middleware has already normalized
// into RemoteAddr.
func sourceAddress(r *http.Request) string {
	return r.RemoteAddr
}
