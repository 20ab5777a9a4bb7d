// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"context"
	"database/sql"

	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/user"
)

// appendEvent records one audit event in the same transaction as the
// state mutation it describes.
func (s *Server) appendEvent(ctx context.Context, tx *sql.Tx, eventType audit.EventType, actor user.User, message string) error {
	event := &audit.Event{
		Type:    eventType,
		Level:   audit.LevelInfo,
		Message: message,
		Actor: audit.ActorSnapshot{
			UserID:   actor.ID,
			Username: actor.Username,
			Role:     string(actor.Role),
		},
	}
	if actor.FullName != nil {
		event.Actor.FullName = *actor.FullName
	}
	return s.db.Audit.Tx(tx).Append(ctx, event)
}
