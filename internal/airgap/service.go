// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package airgap

import (
	"context"
	"time"
)

// MonitorService runs a Detector as a supervised background service: it
// checks immediately on start, then on every tick of the configured
// interval, until its context is canceled. It is uncancellable mid-probe
// by design — Serve only observes ctx.Done() between cycles, matching
// the dedicated blocking-loop thread the detection logic is modeled on.
type MonitorService struct {
	detector *Detector
}

// NewMonitorService wraps detector as a suture.Service.
func NewMonitorService(detector *Detector) *MonitorService {
	return &MonitorService{detector: detector}
}

// Serve implements suture.Service.
func (s *MonitorService) Serve(ctx context.Context) error {
	if !s.detector.Enabled() {
		<-ctx.Done()
		return ctx.Err()
	}

	s.detector.Check(context.WithoutCancel(ctx))

	ticker := time.NewTicker(s.detector.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.detector.Check(context.WithoutCancel(ctx))
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *MonitorService) String() string {
	return "airgap-monitor"
}
