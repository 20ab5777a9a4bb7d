// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package repository is the persistence layer: a single-file embedded
// DuckDB store for elections, polling stations, committee sessions,
// data entries, investigations, users, and sessions, plus the audit log
// (see internal/audit).
//
// # Transaction boundary
//
// Every state-changing operation opens exactly one transaction that
// covers four steps: read current state, compute the transition (via
// the relevant domain package's state machine), persist the new state,
// and emit the audit event — all four commit together or none do. See
// WithTx.
//
// DuckDB's MVCC is optimistic: concurrent writers do not block each
// other, but one loses with a transaction-conflict error on commit if
// their write sets overlapped. That is the opposite of the immediate,
// pessimistic write lock the system was designed around (SQLite's
// BEGIN IMMEDIATE). WithTx closes that gap by serializing all
// transactions in this process behind a single mutex, so only one
// read-compute-persist-audit cycle runs at a time; a conflict can then
// only come from a second process writing the same file, which this
// system never does. Callers that hit a conflict anyway (isConflict)
// may retry the whole operation.
package repository
