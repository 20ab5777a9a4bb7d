// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package audit

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage. Used by tests
// and by components that do not need cross-restart durability; the
// DuckDB-backed Store is authoritative in production (see
// duckdb_store.go).
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
	nextID int64
}

// NewMemoryStore creates an empty in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append assigns the next monotonic ID and timestamp (if unset) and
// stores the event.
func (s *MemoryStore) Append(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *MemoryStore) matches(event *Event, filter *QueryFilter) bool {
	if len(filter.Levels) > 0 {
		found := false
		for _, l := range filter.Levels {
			if event.Level == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.Types) > 0 {
		found := false
		for _, t := range filter.Types {
			if event.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.UserIDs) > 0 {
		found := false
		for _, id := range filter.UserIDs {
			if event.Actor.UserID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Since != nil && event.Timestamp.Before(*filter.Since) {
		return false
	}
	return true
}

// Query returns events matching filter, paginated and ordered per
// QueryFilter's Ascending rule.
func (s *MemoryStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Event
	for _, e := range s.events {
		if s.matches(&e, &filter) {
			matched = append(matched, e)
		}
	}

	if filter.Ascending() {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.Before(matched[j].Timestamp) })
	} else {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	}

	offset := filter.Offset()
	limit := filter.Limit()
	if offset >= len(matched) {
		return []Event{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count returns the number of events matching filter, ignoring pagination.
func (s *MemoryStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, e := range s.events {
		if s.matches(&e, &filter) {
			count++
		}
	}
	return count, nil
}

// ByUser lists one user's events, newest first, with the total matching
// count for pagination.
func (s *MemoryStore) ByUser(ctx context.Context, userID int64, page, perPage int) ([]Event, int64, error) {
	filter := QueryFilter{UserIDs: []int64{userID}, Page: page, PerPage: perPage}
	total, err := s.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	events, err := s.Query(ctx, filter)
	return events, total, err
}

// Len returns the number of events in the store (test helper).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
