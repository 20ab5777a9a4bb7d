// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package airgap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateAdmitsWhenNop(t *testing.T) {
	gate := RequestAdmissionGate(Nop())(okHandler())
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateRejectsOnViolation(t *testing.T) {
	d := New(time.Minute)
	d.lastCheck.Store(time.Now().UnixNano())
	d.violation.Store(true)

	gate := RequestAdmissionGate(d)(okHandler())
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), referenceAirgapViolationDetected)
}

func TestGateRejectsWhenStale(t *testing.T) {
	d := New(time.Minute)
	d.lastCheck.Store(time.Now().Add(-4 * time.Minute).UnixNano())

	gate := RequestAdmissionGate(d)(okHandler())
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), referenceAirgapMonitorStale)
}

func TestGateAdmitsWhenFreshAndClear(t *testing.T) {
	d := New(time.Minute)
	d.lastCheck.Store(time.Now().UnixNano())

	gate := RequestAdmissionGate(d)(okHandler())
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
