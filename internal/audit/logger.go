// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package audit

import (
	"context"
	"time"

	"github.com/centralbureau/tabulator/internal/logging"
)

// Logger records audit events synchronously in the caller's transaction
// — unlike a fire-and-forget sink, every state-changing operation must
// observe whether its audit event was actually durable, since the
// append belongs to the same transaction as the state mutation it
// describes.
type Logger struct {
	store Store
}

// NewLogger constructs a Logger backed by store.
func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

// Record appends one audit event, stamping the timestamp if unset.
func (l *Logger) Record(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := l.store.Append(ctx, &event); err != nil {
		logging.Error().Err(err).Str("event_type", string(event.Type)).Msg("failed to append audit event")
		return err
	}
	return nil
}

// Query retrieves events matching filter.
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return l.store.Query(ctx, filter)
}

// Count returns the number of events matching filter.
func (l *Logger) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return l.store.Count(ctx, filter)
}

// ByUser lists one user's events, newest first.
func (l *Logger) ByUser(ctx context.Context, userID int64, page, perPage int) ([]Event, int64, error) {
	return l.store.ByUser(ctx, userID, page, perPage)
}
