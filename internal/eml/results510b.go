// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package eml

import "encoding/xml"

// Results510b is the EML-NL 510b vote-count document: the typed tree
// this system produces as the machine-readable results artifact. It
// covers one election's single contest, broken down per reporting unit
// (polling station) with a total.
type Results510b struct {
	XMLName           xml.Name           `xml:"kr:EML"`
	IDAttr            string             `xml:"Id,attr"`
	SchemaVersion     string             `xml:"SchemaVersion,attr"`
	TransactionID     string             `xml:"TransactionId"`
	ManagingAuthority *ManagingAuthority `xml:"ManagingAuthority,omitempty"`
	CreationDateTime  string             `xml:"CreationDateTime"`
	Count             Count              `xml:"Count"`
}

// ManagingAuthority identifies the body that produced the document.
type ManagingAuthority struct {
	AuthorityIdentifier AuthorityIdentifier `xml:"AuthorityIdentifier"`
	AuthorityAddress    struct{}            `xml:"AuthorityAddress"`
}

// AuthorityIdentifier names the managing authority.
type AuthorityIdentifier struct {
	ID   string `xml:"Id,attr,omitempty"`
	Name string `xml:",chardata"`
}

// Count is the single election event this document reports on.
type Count struct {
	EventIdentifier EventIdentifier `xml:"EventIdentifier"`
	Election        Election        `xml:"Election"`
}

// EventIdentifier optionally names the reporting event.
type EventIdentifier struct {
	ID string `xml:"Id,attr,omitempty"`
}

// Election carries the election identity and its single contest's counts.
type Election struct {
	ElectionIdentifier ElectionIdentifier `xml:"ElectionIdentifier"`
	Contests           []Contest          `xml:"Contest"`
}

// ElectionIdentifier names and dates the election.
type ElectionIdentifier struct {
	ID               string `xml:"Id,attr"`
	ElectionName     string `xml:"ElectionName"`
	ElectionCategory string `xml:"ElectionCategory"`
	ElectionDate     string `xml:"ElectionDate"`
}

// Contest is the vote totals and per-station breakdown for one contest.
type Contest struct {
	ContestIdentifier  ContestIdentifier   `xml:"ContestIdentifier"`
	TotalVotes         TotalVotes          `xml:"TotalVotes"`
	ReportingUnitVotes []ReportingUnitVotes `xml:"ReportingUnitVotes"`
}

// ContestIdentifier names the contest.
type ContestIdentifier struct {
	ID          string  `xml:"Id,attr"`
	ContestName *string `xml:"ContestName,omitempty"`
}

// TotalVotes is the election-wide rollup.
type TotalVotes struct {
	Selections    []Selection     `xml:"Selection"`
	Cast          uint64          `xml:"Cast"`
	TotalCounted  uint64          `xml:"TotalCounted"`
	RejectedVotes []RejectedVotes `xml:"RejectedVotes"`
}

// ReportingUnitVotes is one polling station's vote counts.
type ReportingUnitVotes struct {
	ReportingUnitIdentifier ReportingUnitIdentifier `xml:"ReportingUnitIdentifier"`
	Selections              []Selection             `xml:"Selection"`
	Cast                    uint64                  `xml:"Cast"`
	TotalCounted            uint64                  `xml:"TotalCounted"`
	RejectedVotes           []RejectedVotes         `xml:"RejectedVotes"`
}

// ReportingUnitIdentifier names a polling station.
type ReportingUnitIdentifier struct {
	ID   string `xml:"Id,attr,omitempty"`
	Name string `xml:",chardata"`
}

// RejectedVotes is a blank/invalid count with its reason code.
type RejectedVotes struct {
	ReasonCode string `xml:"ReasonCode,attr"`
	Count      uint64 `xml:",chardata"`
}

// Selection is one political-group's or candidate's valid vote count.
// Exactly one of Affiliation or Candidate is set, mirroring the
// original's tagged-union Selector.
type Selection struct {
	Affiliation *AffiliationIdentifier `xml:"AffiliationIdentifier,omitempty"`
	Candidate   *CandidateSelector     `xml:"Candidate,omitempty"`
	ValidVotes  uint64                 `xml:"ValidVotes"`
}

// AffiliationIdentifier names a political group (an "affiliation" in
// EML-NL terms) within a Selection.
type AffiliationIdentifier struct {
	ID             string `xml:"Id,attr,omitempty"`
	RegisteredName string `xml:"RegisteredName"`
}

// CandidateSelector wraps a candidate identifier within a Selection.
type CandidateSelector struct {
	CandidateIdentifier CandidateIdentifier510b `xml:"CandidateIdentifier"`
}

// CandidateIdentifier510b identifies a candidate in the 510b tree.
type CandidateIdentifier510b struct {
	ID string `xml:"Id,attr"`
}
