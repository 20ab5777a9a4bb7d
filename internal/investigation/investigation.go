// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package investigation implements cross-session corrections of prior
// results: next-session-only records that force the surrounding
// committee session forward or backward as they are created, updated,
// and concluded.
package investigation

import "errors"

// ErrRequiresDataEntryDeletionConsent is returned when flipping
// CorrectedResults from true to false would discard an existing
// data-entry record or result row without the caller explicitly
// consenting to that deletion.
var ErrRequiresDataEntryDeletionConsent = errors.New("investigation has a data entry or result that must be explicitly deleted")

// ErrNewStationMustCorrectResults is returned when a station with no
// previous-session counterpart is given corrected_results = false,
// which would be meaningless: there are no prior results to carry
// forward.
var ErrNewStationMustCorrectResults = errors.New("a newly added polling station must have corrected_results = true")

// Investigation is a next-session-only correction record for one polling
// station, identified by PollingStationID.
type Investigation struct {
	PollingStationID int64
	Reason           string
	Findings         *string
	CorrectedResults *bool
	Concluded        bool
}

// Update describes a requested change to an investigation, mirroring the
// fields an operator may edit. AcceptDataEntryDeletion must be set to
// consent to a cascaded delete of the station's data-entry record and
// result row when CorrectedResults flips from true to false.
type Update struct {
	Reason                     string
	Findings                   *string
	CorrectedResults           *bool
	Concluded                  bool
	AcceptDataEntryDeletion    bool
}

// RequiresSessionAdvance reports whether creating inv on a station in a
// session whose status is still Created should force that session
// forward to DataEntryNotStarted (§4.5).
func RequiresSessionAdvance() bool {
	return true
}

// Apply validates and applies an update to an existing investigation,
// given whether a data-entry record or result row currently exists for
// the station in this session, and whether the station is newly added
// this session (no previous-session counterpart).
//
// It returns the updated investigation and whether the caller must
// cascade-delete the station's data-entry record and result row for
// this session as part of the same transaction.
func Apply(current Investigation, update Update, hasDataEntryOrResult bool, isNewStation bool) (Investigation, bool, error) {
	if update.CorrectedResults != nil && !*update.CorrectedResults && isNewStation {
		return current, false, ErrNewStationMustCorrectResults
	}

	flippingToFalse := current.CorrectedResults != nil && *current.CorrectedResults &&
		update.CorrectedResults != nil && !*update.CorrectedResults

	cascadeDelete := false
	if flippingToFalse && hasDataEntryOrResult {
		if !update.AcceptDataEntryDeletion {
			return current, false, ErrRequiresDataEntryDeletionConsent
		}
		cascadeDelete = true
	}

	current.Reason = update.Reason
	current.Findings = update.Findings
	current.CorrectedResults = update.CorrectedResults
	current.Concluded = update.Concluded
	return current, cascadeDelete, nil
}

// EligibleForNewDataEntry reports whether a concluded investigation's
// outcome makes its station eligible to receive a new data entry this
// session, as opposed to carrying the previous session's results
// forward unchanged.
func (inv Investigation) EligibleForNewDataEntry() bool {
	return inv.Concluded && inv.CorrectedResults != nil && *inv.CorrectedResults
}

// New validates and constructs an investigation for a station, rejecting
// corrected_results = false on a newly added station.
func New(pollingStationID int64, reason string, correctedResults *bool, isNewStation bool) (Investigation, error) {
	if correctedResults != nil && !*correctedResults && isNewStation {
		return Investigation{}, ErrNewStationMustCorrectResults
	}
	return Investigation{PollingStationID: pollingStationID, Reason: reason, CorrectedResults: correctedResults}, nil
}
