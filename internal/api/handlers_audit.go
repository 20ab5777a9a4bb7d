// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"net/http"
	"strconv"

	"github.com/centralbureau/tabulator/internal/audit"
)

type auditLogResponse struct {
	Events []audit.Event `json:"events"`
	Total  int64         `json:"total"`
}

// handleAuditLog returns a page of the audit log, optionally filtered
// by page/per_page query parameters.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	filter := audit.DefaultQueryFilter()
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && perPage > 0 {
		filter.PerPage = perPage
	}

	events, err := s.auditStore.Query(r.Context(), filter)
	if err != nil {
		writeInternal(w, err)
		return
	}
	total, err := s.auditStore.Count(r.Context(), filter)
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, auditLogResponse{Events: events, Total: total})
}

// handleAuditLogUsers returns a page of the audit log scoped to one
// actor, identified by the user_id query parameter.
func (s *Server) handleAuditLogUsers(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeMalformed(w, "user_id query parameter is required")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 100
	}

	events, total, err := s.auditStore.ByUser(r.Context(), userID, page, perPage)
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, auditLogResponse{Events: events, Total: total})
}
