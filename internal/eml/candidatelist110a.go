// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package eml

import "encoding/xml"

// CandidateList110a is a minimal typed reader for the EML-NL 110a
// candidate-list document: just enough structure to seed an election's
// political groups and candidates from an upstream import. It is a
// reader only — this system never produces 110a documents.
type CandidateList110a struct {
	XMLName      xml.Name          `xml:"EML"`
	TransactionID string           `xml:"TransactionId"`
	ElectionEvent ElectionEvent110a `xml:"ElectionEvent"`
}

// ElectionEvent110a wraps the single election this document describes.
type ElectionEvent110a struct {
	Election Election110a `xml:"Election"`
}

// Election110a carries the election identity and its registered parties.
type Election110a struct {
	ElectionIdentifier ElectionIdentifier `xml:"ElectionIdentifier"`
	Contest            Contest110a        `xml:"Contest"`
}

// Contest110a holds the affiliations (political groups) and their candidates.
type Contest110a struct {
	Affiliations []Affiliation110a `xml:"Affiliation"`
}

// Affiliation110a is one political group and its registered candidates.
type Affiliation110a struct {
	AffiliationIdentifier AffiliationIdentifier `xml:"AffiliationIdentifier"`
	Candidates            []Candidate110a       `xml:"Candidate"`
}

// Candidate110a is one candidate on a political group's list.
type Candidate110a struct {
	CandidateIdentifier CandidateIdentifier110a `xml:"CandidateIdentifier"`
	PersonName          PersonName110a          `xml:"CandidateFullName>PersonName"`
}

// CandidateIdentifier110a carries the candidate's list position.
type CandidateIdentifier110a struct {
	ID string `xml:"Id,attr"`
}

// PersonName110a is the minimal name fields needed to seed a candidate row.
type PersonName110a struct {
	FirstName  string `xml:"NameLine"`
	LastName   string `xml:"LastName"`
	NamePrefix string `xml:"NamePrefix"`
}

// ReadCandidateList110a parses a 110a candidate-list document.
func ReadCandidateList110a(data []byte) (CandidateList110a, error) {
	var doc CandidateList110a
	if err := xml.Unmarshal(data, &doc); err != nil {
		return CandidateList110a{}, err
	}
	return doc, nil
}
