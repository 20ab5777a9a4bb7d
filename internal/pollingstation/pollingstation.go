// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package pollingstation models the physical counting locations whose
// tally sheets are keyed and reconciled by the data-entry subsystem.
package pollingstation

// Type is the kind of polling station.
type Type string

const (
	TypeFixedLocation Type = "fixed_location"
	TypeMobile        Type = "mobile"
	TypeSpecial       Type = "special"
)

// PollingStation is a single counting location scoped to one election and
// one committee session.
type PollingStation struct {
	ID                 int64
	ElectionID         int64
	CommitteeSessionID int64
	// IDPrevSession references the same physical station's row in the
	// previous session, if one exists. Nil for a station newly added in
	// this session.
	IDPrevSession *int64

	Number int

	Street              string
	HouseNumber         string
	HouseNumberAddition string
	PostalCode          string
	Locality            string

	NumberOfVoters *int
	Type           Type
}

// IsCarriedForward reports whether this station has a counterpart in the
// previous session (i.e. it is not newly added in this session).
func (p *PollingStation) IsCarriedForward() bool {
	return p.IDPrevSession != nil
}
