// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package eml models the EML-NL XML election interchange format used
// for this system's two touch points with the format: producing a
// 510b vote-count document as the machine-readable results artifact,
// and reading a 110a candidate-list document when an election's
// political groups and candidates are seeded from an upstream import.
//
// The package never reaches for a generic XML-mapping library; the
// corpus it is grounded on carries none, so it uses encoding/xml
// directly, matching the original's typed-tree-in, typed-tree-out
// design: callers get a Go struct tree, not a DOM.
package eml
