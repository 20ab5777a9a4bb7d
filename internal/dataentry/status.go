// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package dataentry

import (
	"encoding/json"
	"errors"
)

// Errors returned by Status transition methods. Any action not
// enumerated for the current state returns ErrInvalid.
var (
	ErrInvalid                             = errors.New("data entry action not valid from current state")
	ErrCannotTransitionUsingDifferentUser  = errors.New("entry is claimed by a different user")
	ErrSecondEntryNeedsDifferentUser       = errors.New("second entry must be made by a different user than the first")
	ErrSecondEntryAlreadyClaimed           = errors.New("second entry is already claimed by another user")
	ErrFirstEntryAlreadyFinalised          = errors.New("first entry is already finalised")
	ErrSecondEntryAlreadyFinalised         = errors.New("entry is already definitive")
)

// StateTag discriminates the DataEntryStatus tagged union.
type StateTag string

const (
	StateFirstEntryNotStarted  StateTag = "FirstEntryNotStarted"
	StateFirstEntryInProgress  StateTag = "FirstEntryInProgress"
	StateFirstEntryHasErrors   StateTag = "FirstEntryHasErrors"
	StateSecondEntryNotStarted StateTag = "SecondEntryNotStarted"
	StateSecondEntryInProgress StateTag = "SecondEntryInProgress"
	StateEntriesDifferent      StateTag = "EntriesDifferent"
	StateDefinitive            StateTag = "Definitive"
)

// Status is the tagged-union data-entry state for one polling station in
// one committee session. Only the fields relevant to Tag are populated.
type Status struct {
	Tag StateTag

	FirstEntryUserID  int64
	SecondEntryUserID int64

	Progress int
	Entry    Results
	// ClientState is an opaque JSON blob the core neither inspects nor
	// validates; it exists so the UI can restore a typist's cursor
	// position across a save/resume cycle.
	ClientState json.RawMessage

	FinalisedFirstEntry Results
	FirstEntry          Results
	SecondEntry         Results
	FinalisedEntry      Results
}

// NotStarted is the zero data-entry state: no row exists yet.
func NotStarted() Status {
	return Status{Tag: StateFirstEntryNotStarted}
}

// ClaimFirst handles claim_first. seed is the entry to initialise a
// fresh claim with (zeroed, or seeded from the previous session per
// SeedFromPrevious); it is ignored on a same-user refresh.
func (s Status) ClaimFirst(userID int64, seed Results) (Status, error) {
	switch s.Tag {
	case StateFirstEntryNotStarted:
		return Status{Tag: StateFirstEntryInProgress, FirstEntryUserID: userID, Entry: seed}, nil
	case StateFirstEntryInProgress:
		if s.FirstEntryUserID != userID {
			return s, ErrCannotTransitionUsingDifferentUser
		}
		return s, nil
	default:
		return s, ErrInvalid
	}
}

// UpdateFirst handles update_first: persist entry/clientState for the
// in-progress first entry.
func (s Status) UpdateFirst(userID int64, entry Results, progress int, clientState json.RawMessage) (Status, error) {
	if s.Tag != StateFirstEntryInProgress {
		return s, ErrInvalid
	}
	if s.FirstEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	s.Entry = entry
	s.Progress = progress
	s.ClientState = clientState
	return s, nil
}

// DeleteFirst handles delete_first: the row is discarded entirely.
func (s Status) DeleteFirst(userID int64) (Status, error) {
	if s.Tag != StateFirstEntryInProgress {
		return s, ErrInvalid
	}
	if s.FirstEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	return NotStarted(), nil
}

// FinaliseFirst handles finalise_first. hasErrors reflects whether the
// validation engine found any F-coded error in entry; validation runs at
// the call site, not inside the state machine.
func (s Status) FinaliseFirst(userID int64, hasErrors bool) (Status, error) {
	if s.Tag != StateFirstEntryInProgress {
		return s, ErrInvalid
	}
	if s.FirstEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	if hasErrors {
		return Status{Tag: StateFirstEntryHasErrors, FirstEntryUserID: userID, FinalisedFirstEntry: s.Entry}, nil
	}
	return Status{Tag: StateSecondEntryNotStarted, FirstEntryUserID: userID, FinalisedFirstEntry: s.Entry}, nil
}

// ResumeFirst handles resume_first: a coordinator sends a
// FirstEntryHasErrors state back to FirstEntryInProgress for the same
// typist to correct.
func (s Status) ResumeFirst() (Status, error) {
	if s.Tag != StateFirstEntryHasErrors {
		return s, ErrInvalid
	}
	return Status{Tag: StateFirstEntryInProgress, FirstEntryUserID: s.FirstEntryUserID, Entry: s.FinalisedFirstEntry}, nil
}

// DiscardFirst handles discard_first: a coordinator abandons a
// FirstEntryHasErrors state entirely, returning to FirstEntryNotStarted.
func (s Status) DiscardFirst() (Status, error) {
	if s.Tag != StateFirstEntryHasErrors {
		return s, ErrInvalid
	}
	return NotStarted(), nil
}

// ClaimSecond handles claim_second. seed is the entry to initialise a
// fresh second-entry claim with (from previous-session results or
// zeroes — never from the first entry, to preserve independence).
func (s Status) ClaimSecond(userID int64, seed Results) (Status, error) {
	switch s.Tag {
	case StateSecondEntryNotStarted:
		if s.FirstEntryUserID == userID {
			return s, ErrSecondEntryNeedsDifferentUser
		}
		return Status{
			Tag: StateSecondEntryInProgress, FirstEntryUserID: s.FirstEntryUserID,
			FinalisedFirstEntry: s.FinalisedFirstEntry, SecondEntryUserID: userID, Entry: seed,
		}, nil
	case StateSecondEntryInProgress:
		if s.SecondEntryUserID != userID {
			return s, ErrSecondEntryAlreadyClaimed
		}
		return s, nil
	default:
		return s, ErrInvalid
	}
}

// UpdateSecond handles update_second.
func (s Status) UpdateSecond(userID int64, entry Results, progress int, clientState json.RawMessage) (Status, error) {
	if s.Tag != StateSecondEntryInProgress {
		return s, ErrInvalid
	}
	if s.SecondEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	s.Entry = entry
	s.Progress = progress
	s.ClientState = clientState
	return s, nil
}

// DeleteSecond handles delete_second: back to SecondEntryNotStarted,
// keeping the finalised first entry intact.
func (s Status) DeleteSecond(userID int64) (Status, error) {
	if s.Tag != StateSecondEntryInProgress {
		return s, ErrInvalid
	}
	if s.SecondEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	return Status{Tag: StateSecondEntryNotStarted, FirstEntryUserID: s.FirstEntryUserID, FinalisedFirstEntry: s.FinalisedFirstEntry}, nil
}

// FinaliseSecond handles finalise_second. hasErrors reflects the
// validation outcome for the second entry; equal reflects the outcome of
// Compare against the finalised first entry.
func (s Status) FinaliseSecond(userID int64, hasErrors, equal bool) (Status, error) {
	if s.Tag != StateSecondEntryInProgress {
		return s, ErrInvalid
	}
	if s.SecondEntryUserID != userID {
		return s, ErrCannotTransitionUsingDifferentUser
	}
	if !hasErrors && equal {
		return Status{Tag: StateDefinitive, FinalisedEntry: s.Entry}, nil
	}
	return Status{
		Tag: StateEntriesDifferent, FirstEntryUserID: s.FirstEntryUserID, FirstEntry: s.FinalisedFirstEntry,
		SecondEntryUserID: s.SecondEntryUserID, SecondEntry: s.Entry,
	}, nil
}

// KeepFirst handles keep_first: a coordinator resolves EntriesDifferent
// by accepting the first typist's entry as definitive.
func (s Status) KeepFirst() (Status, error) {
	if s.Tag != StateEntriesDifferent {
		return s, ErrInvalid
	}
	return Status{Tag: StateDefinitive, FinalisedEntry: s.FirstEntry}, nil
}

// KeepSecond handles keep_second: a coordinator resolves EntriesDifferent
// by accepting the second typist's entry. hasErrors reflects revalidating
// the second entry: if it now has errors, it becomes the new first entry
// under FirstEntryHasErrors rather than being accepted directly.
func (s Status) KeepSecond(hasErrors bool) (Status, error) {
	if s.Tag != StateEntriesDifferent {
		return s, ErrInvalid
	}
	if hasErrors {
		return Status{Tag: StateFirstEntryHasErrors, FirstEntryUserID: s.SecondEntryUserID, FinalisedFirstEntry: s.SecondEntry}, nil
	}
	return Status{Tag: StateDefinitive, FinalisedEntry: s.SecondEntry}, nil
}

// DeleteEntries handles delete_entries: a coordinator discards both
// entries of an EntriesDifferent state, returning to FirstEntryNotStarted.
func (s Status) DeleteEntries() (Status, error) {
	if s.Tag != StateEntriesDifferent {
		return s, ErrInvalid
	}
	return NotStarted(), nil
}

// CheckDefinitiveGuard applies the two blanket rejections that take
// priority over the per-action table: once Definitive, any further
// action fails ErrSecondEntryAlreadyFinalised; any action targeting the
// first entry from FirstEntryHasErrors, SecondEntryNotStarted,
// SecondEntryInProgress or EntriesDifferent (i.e. after the first entry
// has been finalised) fails
// ErrFirstEntryAlreadyFinalised. Callers invoke this before dispatching
// an action that would otherwise be rejected only with the generic
// ErrInvalid, to surface the more specific error.
func (s Status) CheckDefinitiveGuard(targetsFirstEntry bool) error {
	if s.Tag == StateDefinitive {
		return ErrSecondEntryAlreadyFinalised
	}
	if targetsFirstEntry && (s.Tag == StateFirstEntryHasErrors || s.Tag == StateSecondEntryInProgress || s.Tag == StateSecondEntryNotStarted || s.Tag == StateEntriesDifferent) {
		return ErrFirstEntryAlreadyFinalised
	}
	return nil
}
