// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package fieldpath composes dotted, array-subscripted field paths
// (e.g. "data.political_group_votes[0].candidate_votes[2].votes") the
// way the validation engine and the entry-comparison routine address a
// specific value inside a results document. A Path is immutable; each
// method returns a new Path, so the same prefix can be reused to build
// several sibling paths without interference.
package fieldpath

import "strconv"

// Path is an immutable field-path value.
type Path struct {
	s string
}

// Root starts a new path at the given top-level field name.
func Root(field string) Path {
	return Path{s: field}
}

// Field appends ".field" to the path.
func (p Path) Field(field string) Path {
	if p.s == "" {
		return Path{s: field}
	}
	return Path{s: p.s + "." + field}
}

// Index appends "[i]" to the path.
func (p Path) Index(i int) Path {
	return Path{s: p.s + "[" + strconv.Itoa(i) + "]"}
}

// String returns the dotted, subscripted path string.
func (p Path) String() string {
	return p.s
}
