// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// attemptLimiter throttles login attempts per normalized username,
// independent of the hard lockout recorded in the users table: it
// smooths bursts of rapid automated guesses against one account before
// RecordFailedAttempt ever has a chance to latch a lockout, and decays
// on its own so it never needs an explicit reset call. sweep drops
// entries for usernames not seen within a given age; it runs only when
// Service.SweepThrottle is called, and no background service calls
// that, so entries otherwise stay in the map.
type attemptLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{entries: make(map[string]*limiterEntry)}
}

// allow reports whether another login attempt for username may proceed
// right now: one attempt per second, burst of three, per account.
func (a *attemptLimiter) allow(username string) bool {
	a.mu.Lock()
	entry, ok := a.entries[username]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Second), 3)}
		a.entries[username] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	a.mu.Unlock()

	return limiter.Allow()
}

// sweep drops limiter entries untouched for longer than maxAge.
func (a *attemptLimiter) sweep(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, entry := range a.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(a.entries, k)
		}
	}
}
