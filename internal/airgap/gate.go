// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package airgap

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// rejection is the {error, fatal, reference} error body shared by every
// rejecting handler in this service.
type rejection struct {
	Error     string `json:"error"`
	Fatal     bool   `json:"fatal"`
	Reference string `json:"reference"`
}

const (
	referenceAirgapViolationDetected = "AirgapViolationDetected"
	referenceAirgapMonitorStale      = "AirgapMonitorStale"
)

// RequestAdmissionGate wraps next with the air-gap check: requests are
// rejected with 503 while a violation is latched, or while the last
// completed check is older than 3x the probe interval (the monitor is
// presumed dead). A Nop detector always admits.
func RequestAdmissionGate(detector *Detector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			if detector.ViolationDetected() {
				writeRejection(w, "network egress was detected; this appliance must be air-gapped", referenceAirgapViolationDetected)
				return
			}
			if detector.Stale(time.Now()) {
				writeRejection(w, "the air-gap monitor has not reported recently", referenceAirgapMonitorStale)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeRejection(w http.ResponseWriter, message, reference string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(rejection{Error: message, Fatal: true, Reference: reference})
}
