// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package middleware provides HTTP middleware for the API router that
doesn't belong to chi's own middleware package: response compression
and Prometheus instrumentation. Request ID tracking and panic recovery
are handled by chi/middleware directly in internal/api.Router.

Key Components:

  - Compression: gzip compression for every response
  - PrometheusMetrics: request count, duration, and in-flight gauge,
    recorded into internal/metrics

Both are written in the pre-chi http.HandlerFunc-wrapping style and
adapted to chi's http.Handler middleware signature at the call site in
internal/api.Router.

Usage Example - Compression:

	import "github.com/centralbureau/tabulator/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/elections",
	    middleware.Compression(handler),
	)

	// Responses of any size are compressed when the client sends
	// Accept-Encoding: gzip

Usage Example - Prometheus Metrics:

	http.HandleFunc("/api/elections",
	    middleware.PrometheusMetrics(handler),
	)

Compression Details:

The compression middleware:
  - Compresses any response once the client sends Accept-Encoding: gzip
  - Skips WebSocket upgrade requests
  - Pools gzip.Writer values to avoid per-request allocation
  - Sets Content-Encoding and drops the now-stale Content-Length

See Also:

  - internal/api: the router that wires both middleware into the
    request pipeline
  - internal/metrics: the Prometheus metric definitions PrometheusMetrics
    records into
*/
package middleware
