// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package services provides suture.Service wrappers for the background
work this process runs outside of request handling.

# Available services

HTTP Server (HTTPServerService):
  - Wraps *http.Server, converting its ListenAndServe/Shutdown pair into
    suture's context-aware Serve pattern.

Session Sweep (SessionSweepService):
  - Periodically deletes expired session rows via
    repository.SessionRepository.DeleteExpired, independent of the
    lazy sweep that also runs on login.

The air-gap monitor does not need a wrapper here: internal/airgap's
MonitorService already implements suture.Service directly and is added
to the tree with AddBackgroundService alongside SessionSweepService.

# Lifecycle pattern

Both services follow the same shape:

	func (s *Service) Serve(ctx context.Context) error {
	    // start work
	    <-ctx.Done()
	    // stop work, return nil for a clean shutdown
	}

Return values determine supervisor behavior: nil means the service
stopped cleanly and will not restart; a non-nil error means it crashed
and the supervisor will restart it.
*/
package services
