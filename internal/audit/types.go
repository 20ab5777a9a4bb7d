// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package audit provides the append-only, tamper-evident event log.
// Every state-changing core operation emits exactly one event, in the
// same transaction that mutated state.
package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// EventType tags an audit event with the operation it records.
type EventType string

const (
	EventUserLoggedIn        EventType = "user.logged_in"
	EventUserLoggedOut       EventType = "user.logged_out"
	EventUserSessionExtended EventType = "user.session_extended"
	EventUserSessionExpired  EventType = "user.session_expired"
	EventUserCreated         EventType = "user.created"
	EventUserUpdated         EventType = "user.updated"
	EventUserDeleted         EventType = "user.deleted"
	EventUserPasswordChanged EventType = "user.password_changed"

	EventElectionCreated EventType = "election.created"
	EventElectionUpdated EventType = "election.updated"
	EventElectionDeleted EventType = "election.deleted"

	EventPollingStationCreated EventType = "polling_station.created"
	EventPollingStationUpdated EventType = "polling_station.updated"
	EventPollingStationDeleted EventType = "polling_station.deleted"

	EventCommitteeSessionCreated       EventType = "committee_session.created"
	EventCommitteeSessionUpdated       EventType = "committee_session.updated"
	EventCommitteeSessionDeleted       EventType = "committee_session.deleted"
	EventCommitteeSessionStatusChanged EventType = "committee_session.status_changed"

	EventDataEntryStarted        EventType = "data_entry.started"
	EventDataEntryResumed        EventType = "data_entry.resumed"
	EventDataEntrySaved          EventType = "data_entry.saved"
	EventDataEntryFinalised      EventType = "data_entry.finalised"
	EventDataEntryDeleted        EventType = "data_entry.deleted"
	EventDataEntryKeptFirst      EventType = "data_entry.kept_first"
	EventDataEntryKeptSecond     EventType = "data_entry.kept_second"
	EventDataEntryDiscardedFirst EventType = "data_entry.discarded_first"
	EventDataEntryDiscardedBoth  EventType = "data_entry.discarded_both"

	EventInvestigationCreated   EventType = "investigation.created"
	EventInvestigationUpdated   EventType = "investigation.updated"
	EventInvestigationConcluded EventType = "investigation.concluded"
	EventInvestigationDeleted   EventType = "investigation.deleted"

	EventFileCreated             EventType = "file.created"
	EventApplicationStarted      EventType = "application.started"
	EventAirgapViolationDetected EventType = "airgap.violation_detected"
	EventAirgapViolationCleared  EventType = "airgap.violation_cleared"
)

// Level is the severity of an audit event.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ActorSnapshot captures an acting user's identity at the moment an
// event is emitted, so that history remains readable after the user row
// is deleted or renamed.
type ActorSnapshot struct {
	UserID   int64
	Username string
	FullName string
	Role     string
}

// Event is one append-only audit log entry. ID is assigned by the store
// and is monotonically increasing.
type Event struct {
	ID            int64           `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Type          EventType       `json:"type"`
	Level         Level           `json:"level"`
	Message       string          `json:"message,omitempty"`
	WorkstationID string          `json:"workstation_id,omitempty"`
	Actor         ActorSnapshot   `json:"actor"`
	SourceAddress string          `json:"source_address,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// Store defines append-only persistence and filtered querying for audit
// events.
type Store interface {
	Append(ctx context.Context, event *Event) error
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)
	Count(ctx context.Context, filter QueryFilter) (int64, error)
	ByUser(ctx context.Context, userID int64, page, perPage int) ([]Event, int64, error)
}

// QueryFilter selects events by level set, event-type set, user-id set,
// and an optional since-timestamp, paginated by (page, per_page). When
// Since is set, results are returned ascending from Since; otherwise
// descending by time (the most recent event first).
type QueryFilter struct {
	Levels  []Level
	Types   []EventType
	UserIDs []int64
	Since   *time.Time
	Page    int
	PerPage int
}

// DefaultQueryFilter returns the first page at the default page size,
// descending by time.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{Page: 1, PerPage: 100}
}

// Offset computes the row offset for the filter's (page, per_page),
// defaulting to page 1 / 100 rows when unset.
func (f QueryFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 {
		perPage = 100
	}
	return (page - 1) * perPage
}

// Limit returns the effective per-page row count, defaulting to 100.
func (f QueryFilter) Limit() int {
	if f.PerPage < 1 {
		return 100
	}
	return f.PerPage
}

// Ascending reports whether results should be ordered oldest-first,
// which is the case exactly when Since is set.
func (f QueryFilter) Ascending() bool {
	return f.Since != nil
}
