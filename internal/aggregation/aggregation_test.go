// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centralbureau/tabulator/internal/dataentry"
)

func station(id int64, groupTotal, c1, c2 uint64) StationEntry {
	return StationEntry{
		PollingStationID: id,
		Results: dataentry.Results{
			VotersCounts: dataentry.VotersCounts{PollCardCount: 10, TotalAdmittedVotersCount: 10},
			VotesCounts: dataentry.VotesCounts{
				PoliticalGroupTotalVotes:  []dataentry.PoliticalGroupTotalVotes{{Number: 1, Total: groupTotal}},
				TotalVotesCandidatesCount: groupTotal,
				TotalVotesCastCount:       groupTotal,
			},
			DifferencesCounts: dataentry.DifferencesCounts{MoreBallotsCount: 1},
			PoliticalGroupVotes: []dataentry.PoliticalGroupCandidateVotes{
				{Number: 1, Total: groupTotal, CandidateVotes: []dataentry.CandidateVotes{{Number: 1, Votes: c1}, {Number: 2, Votes: c2}}},
			},
		},
	}
}

func TestSummarizeSumsAcrossStations(t *testing.T) {
	entries := []StationEntry{station(1, 10, 6, 4), station(2, 20, 15, 5)}
	summary := Summarize(entries)

	assert.EqualValues(t, 20, summary.VotersCounts.PollCardCount)
	assert.EqualValues(t, 30, summary.VotesCounts.TotalVotesCandidatesCount)
	assert.EqualValues(t, 2, summary.MoreBallotsCount)

	require := assert.New(t)
	require.Len(summary.PoliticalGroupVotes, 1)
	require.EqualValues(30, summary.PoliticalGroupVotes[0].Total)
	require.EqualValues(21, summary.PoliticalGroupVotes[0].CandidateVotes[0].Votes)
	require.EqualValues(9, summary.PoliticalGroupVotes[0].CandidateVotes[1].Votes)
	require.Len(summary.PerStation, 2)
}

func TestValidVoteTotals(t *testing.T) {
	entries := []StationEntry{station(1, 10, 6, 4)}
	summary := Summarize(entries)
	totals := summary.ValidVoteTotals()
	assert.Equal(t, map[int]uint64{1: 10}, totals)
}
