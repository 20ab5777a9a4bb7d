// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package airgap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNopDetectorNeverViolatesOrStales(t *testing.T) {
	d := Nop()
	assert.False(t, d.Enabled())
	assert.False(t, d.ViolationDetected())
	assert.False(t, d.Stale(time.Now()))
}

func TestNewDetectorStaleBeforeFirstCheck(t *testing.T) {
	d := New(DefaultInterval)
	assert.True(t, d.Enabled())
	_, checked := d.LastCheck()
	assert.False(t, checked)
	assert.True(t, d.Stale(time.Now()))
}

func TestStaleThresholdIsThreeIntervals(t *testing.T) {
	d := New(time.Minute)
	d.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())
	assert.False(t, d.Stale(time.Now()))

	d.lastCheck.Store(time.Now().Add(-4 * time.Minute).UnixNano())
	assert.True(t, d.Stale(time.Now()))
}
