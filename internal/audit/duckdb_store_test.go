// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

//go:build integration

package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDuckDBStoreCreateTable(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()

	require.NoError(t, store.CreateTable(ctx))

	var tableName string
	err := db.QueryRowContext(ctx, "SELECT table_name FROM information_schema.tables WHERE table_name = 'audit_events'").Scan(&tableName)
	require.NoError(t, err)
	require.Equal(t, "audit_events", tableName)
}

func TestDuckDBStoreAppendAssignsMonotonicID(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))

	first := &Event{Type: EventUserLoggedIn, Level: LevelInfo, Actor: ActorSnapshot{UserID: 1, Username: "jdoe", Role: "coordinator"}}
	second := &Event{Type: EventUserLoggedOut, Level: LevelInfo, Actor: ActorSnapshot{UserID: 1, Username: "jdoe", Role: "coordinator"}}

	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))
	require.Greater(t, second.ID, first.ID)
}

func TestDuckDBStoreQueryFiltersByTypeAndLevel(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))

	now := time.Now().UTC()
	events := []*Event{
		{Timestamp: now.Add(-2 * time.Hour), Type: EventUserLoggedIn, Level: LevelInfo, Actor: ActorSnapshot{UserID: 1, Role: "typist"}},
		{Timestamp: now.Add(-1 * time.Hour), Type: EventUserLoggedIn, Level: LevelWarning, Actor: ActorSnapshot{UserID: 2, Role: "typist"}},
		{Timestamp: now, Type: EventAirgapViolationDetected, Level: LevelError, Actor: ActorSnapshot{UserID: 0, Role: "system"}},
	}
	for _, e := range events {
		require.NoError(t, store.Append(ctx, e))
	}

	results, err := store.Query(ctx, QueryFilter{Types: []EventType{EventUserLoggedIn}, Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = store.Query(ctx, QueryFilter{Levels: []Level{LevelWarning, LevelError}, Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestDuckDBStoreQueryOrdersAscendingWhenSinceSet(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))

	now := time.Now().UTC()
	require.NoError(t, store.Append(ctx, &Event{Timestamp: now.Add(-2 * time.Hour), Type: EventUserLoggedIn, Level: LevelInfo, Actor: ActorSnapshot{UserID: 1}}))
	require.NoError(t, store.Append(ctx, &Event{Timestamp: now.Add(-1 * time.Hour), Type: EventUserLoggedOut, Level: LevelInfo, Actor: ActorSnapshot{UserID: 1}}))

	since := now.Add(-3 * time.Hour)
	results, err := store.Query(ctx, QueryFilter{Since: &since, Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Timestamp.Before(results[1].Timestamp))
}

func TestDuckDBStoreCount(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, &Event{Type: EventUserLoggedIn, Level: LevelInfo, Actor: ActorSnapshot{UserID: int64(i)}}))
	}

	count, err := store.Count(ctx, QueryFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 5, count)

	count, err = store.Count(ctx, QueryFilter{Types: []EventType{EventUserLoggedIn}})
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

func TestDuckDBStoreByUserPaginates(t *testing.T) {
	db := setupTestDB(t)
	store := NewDuckDBStore(db)
	ctx := context.Background()
	require.NoError(t, store.CreateTable(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, &Event{Type: EventDataEntrySaved, Level: LevelInfo, Actor: ActorSnapshot{UserID: 9}}))
	}
	require.NoError(t, store.Append(ctx, &Event{Type: EventDataEntrySaved, Level: LevelInfo, Actor: ActorSnapshot{UserID: 10}}))

	events, total, err := store.ByUser(ctx, 9, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, events, 2)
}
