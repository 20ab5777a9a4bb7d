// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/committeesession"
	"github.com/centralbureau/tabulator/internal/dataentry"
)

func (s *Server) handleListCommitteeSessions(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	sessions, err := s.committeeSessions.ListByElection(r.Context(), electionID)
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, sessions)
}

func (s *Server) handleCreateCommitteeSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	var req committeeSessionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	existing, err := s.committeeSessions.ListByElection(r.Context(), electionID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	candidate := committeesession.Session{
		ElectionID:     electionID,
		Number:         len(existing) + 1,
		Location:       req.Location,
		ScheduledStart: req.ScheduledStart,
		Status:         committeesession.StatusCreated,
	}

	out := candidate
	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		var txErr error
		out, txErr = s.committeeSessions.Create(r.Context(), tx, candidate)
		if txErr != nil {
			return txErr
		}
		return s.appendEvent(r.Context(), tx, audit.EventCommitteeSessionCreated, sess.User, "created committee session")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, out)
}

func (s *Server) handleUpdateCommitteeSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	sessionID, ok := pathInt64(w, r, "sessionID")
	if !ok {
		return
	}
	existing, err := s.committeeSessions.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req committeeSessionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	existing.Location = req.Location
	existing.ScheduledStart = req.ScheduledStart

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.committeeSessions.Update(r.Context(), tx, existing); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventCommitteeSessionUpdated, sess.User, "updated committee session")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, existing)
}

func (s *Server) handleDeleteCommitteeSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	sessionID, ok := pathInt64(w, r, "sessionID")
	if !ok {
		return
	}
	if _, err := s.committeeSessions.Get(r.Context(), sessionID); err != nil {
		writeDomainError(w, err)
		return
	}

	err := s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.committeeSessions.Delete(r.Context(), tx, sessionID); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventCommitteeSessionDeleted, sess.User, "deleted committee session")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}

// handleCommitteeSessionStatus drives the committee session's status
// machine. The target status names the transition to attempt; system-
// triggered transitions (ReopenForInvestigation, AdvanceForInvestigation,
// RevertToCreated) are invoked by the investigation handlers, not here.
func (s *Server) handleCommitteeSessionStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	sessionID, ok := pathInt64(w, r, "sessionID")
	if !ok {
		return
	}
	cs, err := s.committeeSessions.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req committeeSessionStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	var next committeesession.Status
	switch req.Status {
	case string(committeesession.StatusInPreparation):
		next, err = cs.Status.EnterPreparation()
	case string(committeesession.StatusDataEntryNotStarted):
		next, err = cs.Status.LeavePreparation(cs.ScheduledStart != nil, cs.Location != "")
	case string(committeesession.StatusDataEntryInProgress):
		next, err = cs.Status.StartDataEntry()
	case string(committeesession.StatusDataEntryPaused):
		next, err = cs.Status.PauseDataEntry()
	case string(committeesession.StatusDataEntryFinished):
		complete, cerr := s.allStationsDefinitive(r.Context(), sessionID)
		if cerr != nil {
			writeInternal(w, cerr)
			return
		}
		next, err = cs.Status.FinishDataEntry(complete)
	case string(committeesession.StatusCompleted):
		next, err = cs.Status.Complete()
	default:
		writeMalformed(w, "unrecognized committee session status")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	cs.Status = next

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.committeeSessions.Update(r.Context(), tx, cs); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventCommitteeSessionStatusChanged, sess.User, "committee session status -> "+string(next))
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, cs)
}

// allStationsDefinitive reports whether every polling station scoped to
// a committee session has a definitive (doubly-reconciled) result or is
// a carry-forward station whose investigation concluded without
// corrected results, the completeness condition FinishDataEntry requires.
func (s *Server) allStationsDefinitive(ctx context.Context, sessionID int64) (bool, error) {
	stations, err := s.pollingStations.ListBySession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if len(stations) == 0 {
		return false, nil
	}
	entries, err := s.dataEntries.ListBySession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	investigations, err := s.investigations.ListBySession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	concludedUnchanged := make(map[int64]bool, len(investigations))
	for _, inv := range investigations {
		concludedUnchanged[inv.PollingStationID] = inv.Concluded && inv.CorrectedResults != nil && !*inv.CorrectedResults
	}
	for _, st := range stations {
		entry, ok := entries[st.ID]
		if ok && entry.Tag == dataentry.StateDefinitive {
			continue
		}
		if st.IsCarriedForward() && concludedUnchanged[st.ID] {
			continue
		}
		return false, nil
	}
	return true, nil
}
