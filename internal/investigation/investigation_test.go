// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package investigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestNewStationMustCorrectResults(t *testing.T) {
	_, err := New(1, "reason", boolPtr(false), true)
	assert.ErrorIs(t, err, ErrNewStationMustCorrectResults)

	inv, err := New(1, "reason", boolPtr(true), true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), inv.PollingStationID)
}

func TestApplyRequiresConsentOnFlipToFalse(t *testing.T) {
	current := Investigation{PollingStationID: 1, CorrectedResults: boolPtr(true)}
	update := Update{Reason: "r", CorrectedResults: boolPtr(false)}

	_, _, err := Apply(current, update, true, false)
	assert.ErrorIs(t, err, ErrRequiresDataEntryDeletionConsent)

	update.AcceptDataEntryDeletion = true
	updated, cascade, err := Apply(current, update, true, false)
	assert.NoError(t, err)
	assert.True(t, cascade)
	assert.False(t, *updated.CorrectedResults)
}

func TestApplyNoConsentNeededWithoutExistingDataEntry(t *testing.T) {
	current := Investigation{PollingStationID: 1, CorrectedResults: boolPtr(true)}
	update := Update{Reason: "r", CorrectedResults: boolPtr(false)}

	updated, cascade, err := Apply(current, update, false, false)
	assert.NoError(t, err)
	assert.False(t, cascade)
	assert.False(t, *updated.CorrectedResults)
}

func TestEligibleForNewDataEntry(t *testing.T) {
	inv := Investigation{Concluded: true, CorrectedResults: boolPtr(true)}
	assert.True(t, inv.EligibleForNewDataEntry())

	inv.CorrectedResults = boolPtr(false)
	assert.False(t, inv.EligibleForNewDataEntry())
}
