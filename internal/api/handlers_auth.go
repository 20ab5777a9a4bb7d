// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import "net/http"

func (s *Server) handleInitialised(w http.ResponseWriter, r *http.Request) {
	initialised, err := s.auth.Initialised(r.Context())
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, map[string]bool{"initialised": initialised})
}

func (s *Server) handleBootstrapFirstAdmin(w http.ResponseWriter, r *http.Request) {
	var req bootstrapFirstAdminRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	u, err := s.auth.BootstrapFirstAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, userResponse(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Username, req.Password, r.UserAgent(), sourceAddress(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	setSessionCookie(w, s.cfg.SecureCookies, sess)
	writeOK(w, userResponse(sess.User))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	if err := s.auth.Logout(r.Context(), sess.Key); err != nil {
		writeInternal(w, err)
		return
	}
	clearSessionCookie(w, s.cfg.SecureCookies)
	writeNoContent(w)
}

func (s *Server) handleWhoami(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	writeOK(w, userResponse(sess.User))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	var req changePasswordRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := s.auth.ChangePassword(r.Context(), sess.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}
