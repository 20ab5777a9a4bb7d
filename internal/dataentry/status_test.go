// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package dataentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimAndUpdateFirst(t *testing.T) {
	s := NotStarted()
	s, err := s.ClaimFirst(1, Results{Model: ModelCSONextSession})
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryInProgress, s.Tag)

	s, err = s.ClaimFirst(1, Results{})
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryInProgress, s.Tag)

	_, err = s.ClaimFirst(2, Results{})
	assert.ErrorIs(t, err, ErrCannotTransitionUsingDifferentUser)

	_, err = s.UpdateFirst(2, Results{}, 50, nil)
	assert.ErrorIs(t, err, ErrCannotTransitionUsingDifferentUser)

	s, err = s.UpdateFirst(1, Results{}, 50, nil)
	assert.NoError(t, err)
	assert.Equal(t, 50, s.Progress)
}

func TestFinaliseFirstRoutesOnErrors(t *testing.T) {
	s := NotStarted()
	s, _ = s.ClaimFirst(1, Results{})

	withErrors, err := s.FinaliseFirst(1, true)
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryHasErrors, withErrors.Tag)

	resumed, err := withErrors.ResumeFirst()
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryInProgress, resumed.Tag)

	discarded, err := withErrors.DiscardFirst()
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryNotStarted, discarded.Tag)

	clean, err := s.FinaliseFirst(1, false)
	assert.NoError(t, err)
	assert.Equal(t, StateSecondEntryNotStarted, clean.Tag)
}

func TestClaimSecondEnforcesDifferentUser(t *testing.T) {
	s := NotStarted()
	s, _ = s.ClaimFirst(1, Results{})
	s, _ = s.FinaliseFirst(1, false)

	_, err := s.ClaimSecond(1, Results{})
	assert.ErrorIs(t, err, ErrSecondEntryNeedsDifferentUser)

	s, err = s.ClaimSecond(2, Results{})
	assert.NoError(t, err)
	assert.Equal(t, StateSecondEntryInProgress, s.Tag)

	_, err = s.ClaimSecond(3, Results{})
	assert.ErrorIs(t, err, ErrSecondEntryAlreadyClaimed)

	s, err = s.ClaimSecond(2, Results{})
	assert.NoError(t, err)
}

func TestFinaliseSecondDefinitiveOrDifferent(t *testing.T) {
	s := NotStarted()
	s, _ = s.ClaimFirst(1, Results{})
	s, _ = s.FinaliseFirst(1, false)
	s, _ = s.ClaimSecond(2, Results{})

	definitive, err := s.FinaliseSecond(2, false, true)
	assert.NoError(t, err)
	assert.Equal(t, StateDefinitive, definitive.Tag)

	different, err := s.FinaliseSecond(2, false, false)
	assert.NoError(t, err)
	assert.Equal(t, StateEntriesDifferent, different.Tag)

	kept, err := different.KeepFirst()
	assert.NoError(t, err)
	assert.Equal(t, StateDefinitive, kept.Tag)

	keptSecondClean, err := different.KeepSecond(false)
	assert.NoError(t, err)
	assert.Equal(t, StateDefinitive, keptSecondClean.Tag)

	keptSecondErrors, err := different.KeepSecond(true)
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryHasErrors, keptSecondErrors.Tag)

	deleted, err := different.DeleteEntries()
	assert.NoError(t, err)
	assert.Equal(t, StateFirstEntryNotStarted, deleted.Tag)
}

func TestDefinitiveGuardsRejectFurtherActions(t *testing.T) {
	definitive := Status{Tag: StateDefinitive}
	_, err := definitive.ClaimFirst(1, Results{})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, definitive.CheckDefinitiveGuard(true), ErrSecondEntryAlreadyFinalised)

	secondInProgress := Status{Tag: StateSecondEntryInProgress, FirstEntryUserID: 1, SecondEntryUserID: 2}
	assert.ErrorIs(t, secondInProgress.CheckDefinitiveGuard(true), ErrFirstEntryAlreadyFinalised)
}

func TestAnyUnlistedActionIsInvalid(t *testing.T) {
	_, err := NotStarted().UpdateFirst(1, Results{}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NotStarted().FinaliseSecond(1, false, true)
	assert.ErrorIs(t, err, ErrInvalid)
}
