// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"net/http"

	"github.com/centralbureau/tabulator/internal/authz"
	"github.com/centralbureau/tabulator/internal/user"
)

// handleListUsers returns every account a coordinator is permitted to
// see (typists only) or every account for an administrator.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	all, err := s.auth.ListUsers(r.Context())
	if err != nil {
		writeInternal(w, err)
		return
	}

	out := make([]userOut, 0, len(all))
	for _, u := range all {
		if !authz.CanManageUser(sess.User.Role, u.Role) {
			continue
		}
		out = append(out, userResponse(u))
	}
	writeOK(w, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req createUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		writeMalformed(w, "role must be one of administrator, coordinator, typist")
		return
	}
	if !authz.CanManageUser(sess.User.Role, role) {
		writeForbidden(w)
		return
	}

	created, err := s.auth.CreateUser(r.Context(), sess.User, req.Username, req.FullName, role, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, userResponse(created))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	id, ok := pathInt64(w, r, "userID")
	if !ok {
		return
	}
	target, err := s.auth.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanManageUser(sess.User.Role, target.Role) {
		writeForbidden(w)
		return
	}
	writeOK(w, userResponse(target))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	id, ok := pathInt64(w, r, "userID")
	if !ok {
		return
	}
	existing, err := s.auth.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanManageUser(sess.User.Role, existing.Role) {
		writeForbidden(w)
		return
	}

	var req updateUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	newRole, err := user.ParseRole(req.Role)
	if err != nil {
		writeMalformed(w, "role must be one of administrator, coordinator, typist")
		return
	}
	if !authz.CanManageUser(sess.User.Role, newRole) {
		writeForbidden(w)
		return
	}

	updated, err := s.auth.UpdateUser(r.Context(), sess.User, id, req.FullName, newRole)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, userResponse(updated))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	id, ok := pathInt64(w, r, "userID")
	if !ok {
		return
	}
	if id == sess.User.ID {
		writeRejection(w, http.StatusConflict, false, "you cannot delete your own account", refOwnAccountCannotBeDeleted)
		return
	}

	target, err := s.auth.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !authz.CanManageUser(sess.User.Role, target.Role) {
		writeForbidden(w)
		return
	}

	if err := s.auth.DeleteUser(r.Context(), sess.User, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}
