// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRecordAppendsAndStampsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	logger := NewLogger(store)
	ctx := context.Background()

	before := time.Now()
	err := logger.Record(ctx, Event{
		Type:  EventUserLoggedIn,
		Level: LevelInfo,
		Actor: ActorSnapshot{UserID: 1, Username: "jdoe", Role: "coordinator"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	events, err := logger.Query(ctx, DefaultQueryFilter())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.EqualValues(t, 1, events[0].ID)
}

func TestLoggerRecordPreservesExplicitTimestamp(t *testing.T) {
	store := NewMemoryStore()
	logger := NewLogger(store)
	ctx := context.Background()

	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := logger.Record(ctx, Event{Type: EventUserLoggedIn, Level: LevelInfo, Timestamp: stamp})
	require.NoError(t, err)

	events, _ := logger.Query(ctx, DefaultQueryFilter())
	require.Len(t, events, 1)
	assert.True(t, events[0].Timestamp.Equal(stamp))
}

func TestLoggerQueryFiltersByLevelAndType(t *testing.T) {
	store := NewMemoryStore()
	logger := NewLogger(store)
	ctx := context.Background()

	require.NoError(t, logger.Record(ctx, Event{Type: EventUserLoggedIn, Level: LevelInfo}))
	require.NoError(t, logger.Record(ctx, Event{Type: EventAirgapViolationDetected, Level: LevelError}))
	require.NoError(t, logger.Record(ctx, Event{Type: EventUserLoggedOut, Level: LevelInfo}))

	errorsOnly, err := logger.Query(ctx, QueryFilter{Levels: []Level{LevelError}, Page: 1, PerPage: 100})
	require.NoError(t, err)
	require.Len(t, errorsOnly, 1)
	assert.Equal(t, EventAirgapViolationDetected, errorsOnly[0].Type)

	count, err := logger.Count(ctx, QueryFilter{Types: []EventType{EventUserLoggedIn, EventUserLoggedOut}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLoggerByUserPaginates(t *testing.T) {
	store := NewMemoryStore()
	logger := NewLogger(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, logger.Record(ctx, Event{
			Type:  EventDataEntrySaved,
			Level: LevelInfo,
			Actor: ActorSnapshot{UserID: 7},
		}))
	}
	require.NoError(t, logger.Record(ctx, Event{Type: EventDataEntrySaved, Level: LevelInfo, Actor: ActorSnapshot{UserID: 8}}))

	events, total, err := logger.ByUser(ctx, 7, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, events, 2)
}
