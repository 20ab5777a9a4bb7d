// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package eml

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralbureau/tabulator/internal/aggregation"
	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/pollingstation"
)

func sampleElection() election.Election {
	return election.Election{
		ID:             1,
		Name:           "Gemeenteraad Voorbeeld",
		Category:       election.CategoryMunicipal,
		CountingMethod: election.CountingMethodCentral,
		ElectionDate:   time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		NumberOfSeats:  9,
		PoliticalGroups: []election.PoliticalGroup{
			{Number: 1, Name: "Lijst Een", Candidates: []election.Candidate{{Number: 1}, {Number: 2}}},
		},
	}
}

func sampleStationResult() StationResult {
	station := pollingstation.PollingStation{ID: 10, Number: 1}
	entry := aggregation.StationEntry{
		PollingStationID: 10,
		Results: dataentry.Results{
			VotersCounts: dataentry.VotersCounts{TotalAdmittedVotersCount: 100},
			VotesCounts: dataentry.VotesCounts{
				TotalVotesCastCount: 90,
				BlankVotesCount:     5,
				InvalidVotesCount:   5,
			},
			PoliticalGroupVotes: []dataentry.PoliticalGroupCandidateVotes{
				{Number: 1, Total: 90, CandidateVotes: []dataentry.CandidateVotes{{Number: 1, Votes: 60}, {Number: 2, Votes: 30}}},
			},
		},
	}
	return StationResult{Station: station, Entry: entry}
}

func TestProduceResults510bBuildsContestTree(t *testing.T) {
	el := sampleElection()
	stations := []StationResult{sampleStationResult()}
	summary := aggregation.Summarize([]aggregation.StationEntry{stations[0].Entry})

	doc := ProduceResults510b(el, "contest-1", stations, summary, "tx-1", time.Date(2026, 3, 19, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "1", doc.Count.Election.ElectionIdentifier.ID)
	require.Len(t, doc.Count.Election.Contests, 1)
	contest := doc.Count.Election.Contests[0]
	assert.EqualValues(t, 90, contest.TotalVotes.TotalCounted)
	require.Len(t, contest.ReportingUnitVotes, 1)
	assert.Equal(t, "10", contest.ReportingUnitVotes[0].ReportingUnitIdentifier.ID)

	foundAffiliation, foundCandidate := false, false
	for _, s := range contest.TotalVotes.Selections {
		if s.Affiliation != nil && s.Affiliation.ID == "1" {
			foundAffiliation = true
			assert.EqualValues(t, 90, s.ValidVotes)
		}
		if s.Candidate != nil && s.Candidate.CandidateIdentifier.ID == "1-1" {
			foundCandidate = true
			assert.EqualValues(t, 60, s.ValidVotes)
		}
	}
	assert.True(t, foundAffiliation)
	assert.True(t, foundCandidate)
}

func TestMarshalProducesDeterministicHash(t *testing.T) {
	el := sampleElection()
	stations := []StationResult{sampleStationResult()}
	summary := aggregation.Summarize([]aggregation.StationEntry{stations[0].Entry})
	when := time.Date(2026, 3, 19, 10, 0, 0, 0, time.UTC)
	doc := ProduceResults510b(el, "contest-1", stations, summary, "tx-1", when)

	contentA, hashA, err := Marshal(doc)
	require.NoError(t, err)
	contentB, hashB, err := Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.Equal(t, contentA, contentB)
	assert.Len(t, hashA, 64)
	assert.Contains(t, string(contentA), "<?xml")
}

func TestReadCandidateList110aParsesAffiliationsAndCandidates(t *testing.T) {
	data := []byte(`<EML>
  <TransactionId>1</TransactionId>
  <ElectionEvent>
    <Election>
      <ElectionIdentifier Id="1">
        <ElectionName>Gemeenteraad Voorbeeld</ElectionName>
        <ElectionCategory>GR</ElectionCategory>
        <ElectionDate>2026-03-18</ElectionDate>
      </ElectionIdentifier>
      <Contest>
        <Affiliation>
          <AffiliationIdentifier Id="1">
            <RegisteredName>Lijst Een</RegisteredName>
          </AffiliationIdentifier>
          <Candidate>
            <CandidateIdentifier Id="1"/>
          </Candidate>
        </Affiliation>
      </Contest>
    </Election>
  </ElectionEvent>
</EML>`)

	doc, err := ReadCandidateList110a(data)
	require.NoError(t, err)
	require.Len(t, doc.ElectionEvent.Election.Contest.Affiliations, 1)
	affiliation := doc.ElectionEvent.Election.Contest.Affiliations[0]
	assert.Equal(t, "Lijst Een", affiliation.AffiliationIdentifier.RegisteredName)
	require.Len(t, affiliation.Candidates, 1)
	assert.Equal(t, "1", affiliation.Candidates[0].CandidateIdentifier.ID)
}

func TestReadCandidateList110aRejectsMalformedXML(t *testing.T) {
	_, err := ReadCandidateList110a([]byte("<EML><Unclosed>"))
	require.Error(t, err)
	var syntaxErr *xml.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
