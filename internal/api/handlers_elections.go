// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"database/sql"
	"net/http"

	"github.com/centralbureau/tabulator/internal/audit"
)

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := s.elections.List(r.Context())
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, elections)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	el, err := s.elections.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, el)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req electionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	candidate := req.toDomain(0)

	out := candidate
	err := s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		var txErr error
		out, txErr = s.elections.Create(r.Context(), tx, candidate)
		if txErr != nil {
			return txErr
		}
		return s.appendEvent(r.Context(), tx, audit.EventElectionCreated, sess.User, "created election "+out.Name)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, out)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	id, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	var req electionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	candidate := req.toDomain(id)

	err := s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.elections.Update(r.Context(), tx, candidate); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventElectionUpdated, sess.User, "updated election "+candidate.Name)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, candidate)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	id, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	el, err := s.elections.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.elections.Delete(r.Context(), tx, id); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventElectionDeleted, sess.User, "deleted election "+el.Name)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}
