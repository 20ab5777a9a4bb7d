// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package api provides the HTTP surface: routing on chi, session
// authentication, Casbin authorization, and one handler group per
// domain (auth, users, elections, polling stations, committee
// sessions, data entry, investigations, results, audit log).
//
// Every handler that changes state opens exactly one repository.DB
// transaction, running the full read-current-state, compute-
// transition, persist-new-state, emit-audit-event cycle inside it; a
// validation or state-machine failure returns before the transaction
// is opened at all, or aborts it, so no partial state is ever visible.
//
// Error responses are always {error, fatal, reference}: reference is a
// machine-readable enum naming the rejection (state-machine error
// name, committee-session gate name, or an auth/validation reason),
// fatal distinguishes a client-recoverable rejection (409, 422) from
// one that is not (500, air-gap 503).
package api
