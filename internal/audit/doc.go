// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package audit provides the append-only audit trail that records every
// state-changing operation in the tabulation process.
//
// # Overview
//
// Every core operation that mutates state — logging in, claiming a
// data-entry row, finalising an entry, changing a committee session's
// status, opening or concluding an investigation — emits exactly one
// Event. The caller appends that event through the same database
// transaction that persisted the state change, so the log can never
// drift out of sync with what actually happened: either both commit or
// neither does.
//
// This is a deliberate departure from a buffered, fire-and-forget audit
// sink. A channel-fed background writer is the right choice for an
// analytics pipeline where occasional event loss is acceptable; it is
// the wrong choice here, because the log is the evidentiary record of
// what a committee did and when.
//
// # Storage
//
// DuckDBStore is the production Store, backed by the same embedded
// database as the rest of the application's state. MemoryStore is used
// in tests and wherever durability is not required.
//
// # Querying
//
// QueryFilter selects by level, event type, and actor user ID, with an
// optional since-timestamp. Results page through Offset/Limit and order
// ascending when Since is set (reading forward from a point in time)
// or descending otherwise (most recent event first).
package audit
