// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package committeesession

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnterPreparation(t *testing.T) {
	got, err := StatusCreated.EnterPreparation()
	assert.NoError(t, err)
	assert.Equal(t, StatusInPreparation, got)

	_, err = StatusInPreparation.EnterPreparation()
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestLeavePreparationRequiresDetails(t *testing.T) {
	_, err := StatusInPreparation.LeavePreparation(false, true)
	assert.ErrorIs(t, err, ErrInvalidDetails)

	_, err = StatusInPreparation.LeavePreparation(true, false)
	assert.ErrorIs(t, err, ErrInvalidDetails)

	got, err := StatusInPreparation.LeavePreparation(true, true)
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryNotStarted, got)
}

func TestStartPauseFinishComplete(t *testing.T) {
	got, err := StatusDataEntryNotStarted.StartDataEntry()
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryInProgress, got)

	got, err = got.PauseDataEntry()
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryPaused, got)

	got, err = got.StartDataEntry()
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryInProgress, got)

	_, err = got.FinishDataEntry(false)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	got, err = got.FinishDataEntry(true)
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryFinished, got)

	got, err = got.Complete()
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, got)
}

func TestReopenForInvestigation(t *testing.T) {
	got, err := StatusDataEntryFinished.ReopenForInvestigation()
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryInProgress, got)

	_, err = StatusCompleted.ReopenForInvestigation()
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestAdvanceForInvestigation(t *testing.T) {
	got, err := StatusCreated.AdvanceForInvestigation()
	assert.NoError(t, err)
	assert.Equal(t, StatusDataEntryNotStarted, got)

	_, err = StatusInPreparation.AdvanceForInvestigation()
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestDataEntryGate(t *testing.T) {
	assert.NoError(t, StatusDataEntryInProgress.CheckDataEntryGate())
	assert.ErrorIs(t, StatusDataEntryPaused.CheckDataEntryGate(), ErrCommitteeSessionPaused)
	assert.ErrorIs(t, StatusCreated.CheckDataEntryGate(), ErrInvalidCommitteeSessionStatus)
	assert.ErrorIs(t, StatusCompleted.CheckDataEntryGate(), ErrInvalidCommitteeSessionStatus)
}

func TestIsPublishable(t *testing.T) {
	xmlID := int64(1)
	pdfID := int64(2)
	s := &Session{Status: StatusDataEntryFinished, ResultsXMLBlobID: &xmlID, ResultsPDFBlobID: &pdfID}
	assert.True(t, s.IsPublishable())

	s.ResultsPDFBlobID = nil
	assert.False(t, s.IsPublishable())

	s.ResultsPDFBlobID = &pdfID
	s.Status = StatusCreated
	assert.False(t, s.IsPublishable())
}
