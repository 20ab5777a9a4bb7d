// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package election models elections, political groups, and candidates —
// the static reference data that every committee session, polling
// station, and data entry is scoped to.
package election

import "time"

// Category is the kind of contest an election is held for.
type Category string

const (
	CategoryMunicipal      Category = "municipal"
	CategoryProvincial     Category = "provincial"
	CategoryNationalLower  Category = "national_lower"
	CategoryNationalUpper  Category = "national_upper"
	CategoryWaterAuthority Category = "water_authority"
	CategoryIsland         Category = "island"
)

// CountingMethod determines where ballots are tallied, which in turn
// determines which polling-station-results model variant applies.
type CountingMethod string

const (
	// CountingMethodCentral means all stations are counted at the central
	// bureau (CSO); the distinction between first and next sessions then
	// drives which results model variant is used.
	CountingMethodCentral CountingMethod = "central"
	// CountingMethodDecentralized means each polling station counts its
	// own ballots (DSO).
	CountingMethodDecentralized CountingMethod = "decentralized"
)

// Gender is an optional candidate attribute; empty string means unspecified.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Election identifies a single contest: its name, category, counting
// method, relevant dates, seat/voter totals, and the ordered list of
// political groups contesting it.
type Election struct {
	ID              int64
	Name            string
	Category        Category
	CountingMethod  CountingMethod
	ElectionDate    time.Time
	NominationDate  time.Time
	NumberOfSeats   int
	NumberOfVoters  int
	PoliticalGroups []PoliticalGroup
}

// PoliticalGroup is a party list participating in the election. Number is
// a stable, 1-based identifier that is strictly increasing across the
// list but not necessarily consecutive once groups have been edited —
// callers must never assume Number equals the group's index.
type PoliticalGroup struct {
	Number     int
	Name       string
	Candidates []Candidate
}

// Candidate is a single nominee on a political group's list. Number is
// stable within its group for the life of the election.
type Candidate struct {
	Number         int
	Initials       string
	FirstName      string
	LastNamePrefix string
	LastName       string
	Locality       string
	CountryCode    string
	Gender         Gender
}

// IsNextSession reports whether sessionNumber identifies a session after
// the first for this election — next sessions seed entries differently
// and use the CSONextSession results variant when counted centrally.
func IsNextSession(sessionNumber int) bool {
	return sessionNumber > 1
}

// TotalValidVotes sums the per-group vote totals, which is the
// denominator used to compute the apportionment quota.
func TotalValidVotes(groupTotals map[int]uint64) uint64 {
	var total uint64
	for _, v := range groupTotals {
		total += v
	}
	return total
}

// GroupByNumber finds a political group by its stable number.
func (e *Election) GroupByNumber(number int) (PoliticalGroup, bool) {
	for _, g := range e.PoliticalGroups {
		if g.Number == number {
			return g, true
		}
	}
	return PoliticalGroup{}, false
}
