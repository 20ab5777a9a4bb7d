// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"database/sql"
	"net/http"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/committeesession"
	"github.com/centralbureau/tabulator/internal/pollingstation"
)

// currentCommitteeSession returns the highest-numbered committee
// session for an election: the one new or updated polling stations are
// scoped to.
func (s *Server) currentCommitteeSession(w http.ResponseWriter, r *http.Request, electionID int64) (committeesession.Session, bool) {
	sessions, err := s.committeeSessions.ListByElection(r.Context(), electionID)
	if err != nil {
		writeInternal(w, err)
		return committeesession.Session{}, false
	}
	if len(sessions) == 0 {
		writeNotFound(w)
		return committeesession.Session{}, false
	}
	current := sessions[0]
	for _, cs := range sessions[1:] {
		if cs.Number > current.Number {
			current = cs
		}
	}
	return current, true
}

func (s *Server) handleListPollingStations(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	current, ok := s.currentCommitteeSession(w, r, electionID)
	if !ok {
		return
	}
	stations, err := s.pollingStations.ListBySession(r.Context(), current.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, stations)
}

func (req pollingStationRequest) toDomain(id, electionID, committeeSessionID int64) pollingstation.PollingStation {
	return pollingstation.PollingStation{
		ID:                  id,
		ElectionID:          electionID,
		CommitteeSessionID:  committeeSessionID,
		Number:              req.Number,
		Street:              req.Street,
		HouseNumber:         req.HouseNumber,
		HouseNumberAddition: req.HouseNumberAddition,
		PostalCode:          req.PostalCode,
		Locality:            req.Locality,
		NumberOfVoters:      req.NumberOfVoters,
		Type:                pollingstation.Type(req.Type),
	}
}

func (s *Server) handleCreatePollingStation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	current, ok := s.currentCommitteeSession(w, r, electionID)
	if !ok {
		return
	}

	var req pollingStationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	candidate := req.toDomain(0, electionID, current.ID)

	out := candidate
	err := s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		var txErr error
		out, txErr = s.pollingStations.Create(r.Context(), tx, candidate)
		if txErr != nil {
			return txErr
		}
		return s.appendEvent(r.Context(), tx, audit.EventPollingStationCreated, sess.User, "created polling station")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, out)
}

func (s *Server) handleUpdatePollingStation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	existing, err := s.pollingStations.Get(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req pollingStationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	candidate := req.toDomain(stationID, electionID, existing.CommitteeSessionID)

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.pollingStations.Update(r.Context(), tx, candidate); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventPollingStationUpdated, sess.User, "updated polling station")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, candidate)
}

func (s *Server) handleDeletePollingStation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	if _, err := s.pollingStations.Get(r.Context(), stationID); err != nil {
		writeDomainError(w, err)
		return
	}

	err := s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.pollingStations.Delete(r.Context(), tx, stationID); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventPollingStationDeleted, sess.User, "deleted polling station")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}
