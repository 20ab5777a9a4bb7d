// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package airgap continuously proves that the appliance has no network
// egress and gates request handling on that proof.
//
// A Detector runs on its own dedicated goroutine, never on the request
// executor: every ProbeInterval it attempts TCP connects to a small
// fixed table of IPv4 and IPv6 addresses on port 443 and DNS
// resolutions of a fixed domain table. Any single success latches a
// violation; an all-fail cycle clears it. Each cycle stamps a
// last-check time.
//
// RequestAdmissionGate rejects every request with 503 if a violation is
// latched, or if the last check is older than three probe intervals
// (the monitor is presumed dead) — except when the Detector was built
// with Nop, the test escape hatch for environments with no presumption
// of an air gap.
package airgap
