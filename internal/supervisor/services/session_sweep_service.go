// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/centralbureau/tabulator/internal/logging"
	"github.com/centralbureau/tabulator/internal/repository"
)

// SessionSweepService periodically deletes expired sessions. Sessions
// are also garbage-collected lazily on login (see internal/auth); this
// service is the periodic half of that requirement, for sessions that
// expire between logins.
type SessionSweepService struct {
	db       *repository.DB
	sessions *repository.SessionRepository
	interval time.Duration
}

// NewSessionSweepService wraps db. A zero interval defaults to 5 minutes.
func NewSessionSweepService(db *repository.DB, sessions *repository.SessionRepository, interval time.Duration) *SessionSweepService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionSweepService{db: db, sessions: sessions, interval: interval}
}

// Serve implements suture.Service.
func (s *SessionSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweepService) sweep(ctx context.Context) {
	var swept int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		swept, err = s.sessions.DeleteExpired(ctx, tx)
		return err
	})
	if err != nil {
		logging.Warn().Err(err).Msg("session sweep failed")
		return
	}
	if swept > 0 {
		logging.Info().Int64("count", swept).Msg("swept expired sessions")
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *SessionSweepService) String() string {
	return "session-sweep"
}
