// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package committeesession implements the committee-session lifecycle:
// the status machine that gates what operations are permitted on a
// session's polling stations, and the cross-session bookkeeping that
// coordinates corrections of prior results.
package committeesession

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a committee session.
type Status string

const (
	StatusCreated             Status = "created"
	StatusInPreparation       Status = "in_preparation"
	StatusDataEntryNotStarted Status = "data_entry_not_started"
	StatusDataEntryInProgress Status = "data_entry_in_progress"
	StatusDataEntryPaused     Status = "data_entry_paused"
	StatusDataEntryFinished   Status = "data_entry_finished"
	StatusCompleted           Status = "completed"
)

// ErrInvalidStatusTransition is returned whenever a requested transition
// is not legal from the session's current status.
var ErrInvalidStatusTransition = errors.New("invalid committee session status transition")

// ErrInvalidDetails is returned when a required field (start date/time,
// location) is missing for the transition being attempted.
var ErrInvalidDetails = errors.New("committee session details are incomplete")

// Session is a single committee session for one election.
type Session struct {
	ID             int64
	ElectionID     int64
	Number         int
	Location       string
	ScheduledStart *time.Time
	Status         Status

	ResultsXMLBlobID  *int64
	ResultsPDFBlobID  *int64
	OverviewPDFBlobID *int64
}

// IsNextSession reports whether this is a session after the first for its
// election.
func (s *Session) IsNextSession() bool {
	return s.Number > 1
}

// IsPublishable reports whether the session has reached a status at which
// its artifacts may be downloaded, and the artifacts are actually present.
func (s *Session) IsPublishable() bool {
	if s.Status != StatusCompleted && s.Status != StatusDataEntryFinished {
		return false
	}
	return s.ResultsXMLBlobID != nil && s.ResultsPDFBlobID != nil
}

// EnterPreparation transitions Created -> InPreparation.
func (s Status) EnterPreparation() (Status, error) {
	if s != StatusCreated {
		return s, ErrInvalidStatusTransition
	}
	return StatusInPreparation, nil
}

// LeavePreparation transitions InPreparation -> DataEntryNotStarted. The
// session's start date/time must be set and its location non-empty
// before data entry can be scheduled.
func (s Status) LeavePreparation(hasStart bool, hasLocation bool) (Status, error) {
	if s != StatusInPreparation {
		return s, ErrInvalidStatusTransition
	}
	if !hasStart || !hasLocation {
		return s, ErrInvalidDetails
	}
	return StatusDataEntryNotStarted, nil
}

// StartDataEntry transitions DataEntryNotStarted or DataEntryPaused into
// DataEntryInProgress.
func (s Status) StartDataEntry() (Status, error) {
	switch s {
	case StatusDataEntryNotStarted, StatusDataEntryPaused:
		return StatusDataEntryInProgress, nil
	case StatusDataEntryInProgress:
		return s, nil
	default:
		return s, ErrInvalidStatusTransition
	}
}

// PauseDataEntry transitions DataEntryInProgress -> DataEntryPaused.
func (s Status) PauseDataEntry() (Status, error) {
	switch s {
	case StatusDataEntryInProgress:
		return StatusDataEntryPaused, nil
	case StatusDataEntryPaused:
		return s, nil
	default:
		return s, ErrInvalidStatusTransition
	}
}

// FinishDataEntry transitions DataEntryInProgress -> DataEntryFinished.
// complete must reflect the result-completeness check (every station
// either has a Definitive entry this session, or is a concluded
// carry-forward from the previous session).
func (s Status) FinishDataEntry(complete bool) (Status, error) {
	if s != StatusDataEntryInProgress {
		return s, ErrInvalidStatusTransition
	}
	if !complete {
		return s, ErrInvalidStatusTransition
	}
	return StatusDataEntryFinished, nil
}

// Complete transitions DataEntryFinished -> Completed.
func (s Status) Complete() (Status, error) {
	if s != StatusDataEntryFinished {
		return s, ErrInvalidStatusTransition
	}
	return StatusCompleted, nil
}

// ReopenForInvestigation moves DataEntryFinished back to
// DataEntryInProgress. It is a system-triggered transition: it fires
// whenever an investigation is created, updated, or re-opened after the
// session finished data entry (§4.5), not from a direct coordinator
// status-change request.
func (s Status) ReopenForInvestigation() (Status, error) {
	if s != StatusDataEntryFinished {
		return s, ErrInvalidStatusTransition
	}
	return StatusDataEntryInProgress, nil
}

// AdvanceForInvestigation moves Created straight to DataEntryNotStarted.
// Like ReopenForInvestigation, this is system-triggered: creating the
// first investigation on a next session forces the session out of
// Created even though the coordinator has not yet stepped it through
// InPreparation.
func (s Status) AdvanceForInvestigation() (Status, error) {
	if s != StatusCreated {
		return s, ErrInvalidStatusTransition
	}
	return StatusDataEntryNotStarted, nil
}

// RevertToCreated returns the session to Created. It is system-triggered
// when the last investigation in a session is deleted.
func (s Status) RevertToCreated() (Status, error) {
	return StatusCreated, nil
}

// AllowsDataEntry reports whether data-entry actions are admitted while
// the session is in this status.
func (s Status) AllowsDataEntry() bool {
	return s == StatusDataEntryInProgress
}

// ErrCommitteeSessionPaused is the rejection used when a data-entry
// action is attempted while the session is paused specifically (as
// opposed to any other non-admitting status).
var ErrCommitteeSessionPaused = errors.New("committee session is paused")

// ErrInvalidCommitteeSessionStatus rejects a data-entry action attempted
// outside of DataEntryInProgress and outside of DataEntryPaused.
var ErrInvalidCommitteeSessionStatus = errors.New("committee session is not accepting data entry")

// CheckDataEntryGate returns the appropriate rejection for a data-entry
// request given the session's current status, or nil if the request is
// admitted.
func (s Status) CheckDataEntryGate() error {
	switch s {
	case StatusDataEntryInProgress:
		return nil
	case StatusDataEntryPaused:
		return ErrCommitteeSessionPaused
	default:
		return ErrInvalidCommitteeSessionStatus
	}
}
