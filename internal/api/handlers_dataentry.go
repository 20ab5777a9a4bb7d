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
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/pollingstation"
	"github.com/centralbureau/tabulator/internal/resultvalidation"
)

// stationContext bundles the station, its committee session, and its
// election, the three things every data-entry action needs to gate and
// validate against.
type stationContext struct {
	station pollingstation.PollingStation
	session committeesession.Session
	el      election.Election
}

func (s *Server) loadStationContext(ctx context.Context, stationID int64) (stationContext, error) {
	station, err := s.pollingStations.Get(ctx, stationID)
	if err != nil {
		return stationContext{}, err
	}
	session, err := s.committeeSessions.Get(ctx, station.CommitteeSessionID)
	if err != nil {
		return stationContext{}, err
	}
	el, err := s.elections.Get(ctx, station.ElectionID)
	if err != nil {
		return stationContext{}, err
	}
	return stationContext{station: station, session: session, el: el}, nil
}

func (sc stationContext) model() dataentry.Model {
	return dataentry.SelectModel(sc.el.CountingMethod, sc.session.Number)
}

// seedEntry returns the seed a fresh claim should start from: the prior
// session's definitive result for a carried-forward station, or a blank
// entry otherwise.
func (s *Server) seedEntry(ctx context.Context, sc stationContext) (dataentry.Results, error) {
	model := sc.model()
	if sc.station.IDPrevSession == nil {
		return dataentry.EmptyResults(model, sc.el.PoliticalGroups), nil
	}

	sessions, err := s.committeeSessions.ListByElection(ctx, sc.station.ElectionID)
	if err != nil {
		return dataentry.Results{}, err
	}
	var previous committeesession.Session
	found := false
	for _, cs := range sessions {
		if cs.Number == sc.session.Number-1 {
			previous, found = cs, true
			break
		}
	}
	if !found {
		return dataentry.EmptyResults(model, sc.el.PoliticalGroups), nil
	}

	prevEntry, err := s.dataEntries.Get(ctx, *sc.station.IDPrevSession, previous.ID)
	if err != nil {
		return dataentry.Results{}, err
	}
	if prevEntry.Tag != dataentry.StateDefinitive {
		return dataentry.EmptyResults(model, sc.el.PoliticalGroups), nil
	}
	return dataentry.SeedFromPrevious(prevEntry.FinalisedEntry, model), nil
}

func (s *Server) handleDataEntryGet(w http.ResponseWriter, r *http.Request) {
	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}
	writeOK(w, status)
}

func (s *Server) handleDataEntryClaim(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	entryNumber, ok := pathInt(w, r, "entryNumber")
	if !ok {
		return
	}

	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := sc.session.Status.CheckDataEntryGate(); err != nil {
		writeDomainError(w, err)
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	seed, err := s.seedEntry(r.Context(), sc)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	var eventType audit.EventType
	switch entryNumber {
	case 1:
		next, err = current.ClaimFirst(sess.User.ID, seed)
		eventType = audit.EventDataEntryStarted
	case 2:
		next, err = current.ClaimSecond(sess.User.ID, seed)
		eventType = audit.EventDataEntryStarted
	default:
		writeMalformed(w, "entryNumber must be 1 or 2")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, eventType, sess.User, "claimed data entry")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}

func (s *Server) handleDataEntrySave(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	entryNumber, ok := pathInt(w, r, "entryNumber")
	if !ok {
		return
	}

	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := sc.session.Status.CheckDataEntryGate(); err != nil {
		writeDomainError(w, err)
		return
	}

	var req dataEntrySaveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	switch entryNumber {
	case 1:
		next, err = current.UpdateFirst(sess.User.ID, req.Data, req.Progress, req.ClientState)
	case 2:
		next, err = current.UpdateSecond(sess.User.ID, req.Data, req.Progress, req.ClientState)
	default:
		writeMalformed(w, "entryNumber must be 1 or 2")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventDataEntrySaved, sess.User, "saved data entry")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}

func (s *Server) handleDataEntryFinalise(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	entryNumber, ok := pathInt(w, r, "entryNumber")
	if !ok {
		return
	}

	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := sc.session.Status.CheckDataEntryGate(); err != nil {
		writeDomainError(w, err)
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	var eventType audit.EventType
	switch entryNumber {
	case 1:
		validation := resultvalidation.Validate(current.Entry, &sc.el)
		next, err = current.FinaliseFirst(sess.User.ID, len(validation.Errors) > 0)
		eventType = audit.EventDataEntryFinalised
	case 2:
		validation := resultvalidation.Validate(current.Entry, &sc.el)
		comparison := dataentry.Compare(current.FinalisedFirstEntry, current.Entry)
		next, err = current.FinaliseSecond(sess.User.ID, len(validation.Errors) > 0, comparison.Equal)
		eventType = audit.EventDataEntryFinalised
	default:
		writeMalformed(w, "entryNumber must be 1 or 2")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, eventType, sess.User, "finalised data entry")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}

func (s *Server) handleDataEntryDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	stationID, ok := pathInt64(w, r, "stationID")
	if !ok {
		return
	}
	entryNumber, ok := pathInt(w, r, "entryNumber")
	if !ok {
		return
	}

	sc, err := s.loadStationContext(r.Context(), stationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	switch entryNumber {
	case 1:
		next, err = current.DeleteFirst(sess.User.ID)
	case 2:
		next, err = current.DeleteSecond(sess.User.ID)
	default:
		writeMalformed(w, "entryNumber must be 1 or 2")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventDataEntryDeleted, sess.User, "discarded data entry")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}

// handleDataEntryDeleteBoth lets a coordinator discard both entries
// outright, e.g. to restart a station's reconciliation from scratch.
func (s *Server) handleDataEntryDeleteBoth(w http.ResponseWriter, r *http.Request) {
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

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, dataentry.NotStarted()); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, audit.EventDataEntryDiscardedBoth, sess.User, "discarded both data entries")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeNoContent(w)
}

// handleDataEntryResolveErrors lets a coordinator send an entry back to
// the typist (resume_first) or abandon it (discard_first) when the
// first entry has validation errors.
func (s *Server) handleDataEntryResolveErrors(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Action string `json:"action" validate:"required,oneof=resume discard"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	var eventType audit.EventType
	switch req.Action {
	case "resume":
		next, err = current.ResumeFirst()
		eventType = audit.EventDataEntryResumed
	case "discard":
		next, err = current.DiscardFirst()
		eventType = audit.EventDataEntryDiscardedFirst
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, eventType, sess.User, "resolved first-entry errors")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}

// handleDataEntryResolveDifferences lets a coordinator resolve an
// EntriesDifferent state by keeping the first entry, keeping the
// second, or discarding both.
func (s *Server) handleDataEntryResolveDifferences(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Action string `json:"action" validate:"required,oneof=keep_first keep_second delete"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	current, err := s.dataEntries.Get(r.Context(), stationID, sc.session.ID)
	if err != nil {
		writeInternal(w, err)
		return
	}

	var next dataentry.Status
	var eventType audit.EventType
	switch req.Action {
	case "keep_first":
		next, err = current.KeepFirst()
		eventType = audit.EventDataEntryKeptFirst
	case "keep_second":
		validation := resultvalidation.Validate(current.SecondEntry, &sc.el)
		next, err = current.KeepSecond(len(validation.Errors) > 0)
		eventType = audit.EventDataEntryKeptSecond
	case "delete":
		next, err = current.DeleteEntries()
		eventType = audit.EventDataEntryDiscardedBoth
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	err = s.db.WithTx(r.Context(), func(tx *sql.Tx) error {
		if err := s.dataEntries.Put(r.Context(), tx, stationID, sc.session.ID, next); err != nil {
			return err
		}
		return s.appendEvent(r.Context(), tx, eventType, sess.User, "resolved entry differences")
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeOK(w, next)
}
