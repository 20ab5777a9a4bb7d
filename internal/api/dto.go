// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/centralbureau/tabulator/internal/user"
)

// userOut is the wire shape for a user.User: password_hash is never
// serialized.
type userOut struct {
	ID                  int64  `json:"id"`
	Username            string `json:"username"`
	FullName            string `json:"full_name,omitempty"`
	Role                string `json:"role"`
	NeedsPasswordChange bool   `json:"needs_password_change"`
}

func userResponse(u user.User) userOut {
	out := userOut{ID: u.ID, Username: u.Username, Role: string(u.Role), NeedsPasswordChange: u.NeedsPasswordChange}
	if u.FullName != nil {
		out.FullName = *u.FullName
	}
	return out
}

// pathInt64 parses a chi URL parameter as an int64, writing a 422
// rejection and returning ok=false on failure.
func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeMalformed(w, name+" must be a valid integer")
		return 0, false
	}
	return n, true
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeMalformed(w, name+" must be a valid integer")
		return 0, false
	}
	return n, true
}
