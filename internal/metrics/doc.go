// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package metrics provides Prometheus instrumentation for the HTTP
surface and the air-gap detector's probe circuit breakers.

# Metrics Endpoint

Metrics are exposed at /metrics in Prometheus text format by the
promhttp handler wired into the router:

	curl http://localhost:8080/metrics

# Available Metrics

	api_requests_total{method,endpoint,status_code}        counter
	api_request_duration_seconds{method,endpoint}           histogram
	api_active_requests                                     gauge
	circuit_breaker_state_transitions_total{name,from_state,to_state}  counter

# See Also

  - internal/middleware: the request-scoped middleware that records
    the api_requests_total/api_request_duration_seconds metrics
  - internal/airgap: the probe circuit breakers that record
    circuit_breaker_state_transitions_total on every state change
*/
package metrics
