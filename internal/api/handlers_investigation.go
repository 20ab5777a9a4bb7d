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
	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/investigation"
)

func (s *Server) handleGetInvestigation(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	inv, err := s.investigations.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, inv)
}

func (s *Server) handleCreateInvestigation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req investigationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	isNewStation := !sc.station.IsCarriedForward()
	inv, err := investigation.New(stationID, req.Reason, req.CorrectedResults, isNewStation)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	inv.Findings = req.Findings
	inv.Concluded = req.Concluded

	newStatus, advance := advanceForInvestigation(sc.session.Status)

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.investigations.Put(r.Context(), tx, sc.session.ID, inv); err != nil {
			return err
		}
		if advance {
			sc.session.Status = newStatus
			if err := s.committeeSessions.Update(r.Context(), tx, sc.session); err != nil {
				return err
			}
		}
		return s.appendEvent(r.Context(), tx, audit.EventInvestigationCreated, sess.User, "opened investigation")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeCreated(w, inv)
}

func (s *Server) handleUpdateInvestigation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	current, err := s.investigations.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req investigationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}
	hasDataEntryOrResult := entry.Tag != dataentry.StateFirstEntryNotStarted
	isNewStation := !sc.station.IsCarriedForward()

	update := investigation.Update{
		Reason:                  req.Reason,
		Findings:                req.Findings,
		CorrectedResults:        req.CorrectedResults,
		Concluded:               req.Concluded,
		AcceptDataEntryDeletion: req.AcceptDataEntryDeletion,
	}
	updated, cascadeDelete, err := investigation.Apply(current, update, hasDataEntryOrResult, isNewStation)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	newStatus, advance := advanceForInvestigation(sc.session.Status)

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.investigations.Put(r.Context(), tx, sc.session.ID, updated); err != nil {
			return err
		}
		if cascadeDelete {
			if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, dataentry.NotStarted()); err != nil {
				return err
			}
		}
		if advance {
			sc.session.Status = newStatus
			if err := s.committeeSessions.Update(r.Context(), tx, sc.session); err != nil {
				return err
			}
		}
		return s.appendEvent(r.Context(), tx, audit.EventInvestigationUpdated, sess.User, "updated investigation")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, updated)
}

func (s *Server) handleDeleteInvestigation(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := s.investigations.Get(r.Context(), stationID, sc.session.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.investigations.Delete(r.Context(), tx, stationID, sc.session.ID); err != nil {
			return err
		}
		remaining, err := s.investigations.ListBySession(r.Context(), sc.session.ID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			reverted, _ := sc.session.Status.RevertToCreated()
			sc.session.Status = reverted
			if err := s.committeeSessions.Update(r.Context(), tx, sc.session); err != nil {
				return err
			}
		}
		return s.appendEvent(r.Context(), tx, audit.EventInvestigationDeleted, sess.User, "deleted investigation")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}

// advanceForInvestigation applies the system-triggered committee-session
// transitions that accompany opening or touching an investigation
// (§4.5): a session still Created is forced to DataEntryNotStarted, and
// a session that already finished data entry is reopened for
// correction.
func advanceForInvestigation(status committeesession.Status) (committeesession.Status, bool) {
	if status == committeesession.StatusCreated && investigation.RequiresSessionAdvance() {
		next, err := status.AdvanceForInvestigation()
		if err == nil {
			return next, true
		}
	}
	if status == committeesession.StatusDataEntryFinished {
		next, err := status.ReopenForInvestigation()
		if err == nil {
			return next, true
		}
	}
	return status, false
}
