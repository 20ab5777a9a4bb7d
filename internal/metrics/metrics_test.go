// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/elections", "200"))

	RecordAPIRequest("GET", "/api/elections", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/elections", "200"))
	if after != before+1 {
		t.Fatalf("expected counter to increment by 1, got %v -> %v", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	during := testutil.ToFloat64(APIActiveRequests)
	if during != before+1 {
		t.Fatalf("expected gauge to increment, got %v -> %v", before, during)
	}

	TrackActiveRequest(false)
	after := testutil.ToFloat64(APIActiveRequests)
	if after != before {
		t.Fatalf("expected gauge to return to baseline, got %v", after)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	before := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("airgap-ipv4", "closed", "open"))

	RecordCircuitBreakerTransition("airgap-ipv4", "closed", "open")

	after := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues("airgap-ipv4", "closed", "open"))
	if after != before+1 {
		t.Fatalf("expected counter to increment by 1, got %v -> %v", before, after)
	}
}
