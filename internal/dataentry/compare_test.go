// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package dataentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleResults() Results {
	return Results{
		Model: ModelCSONextSession,
		VotersCounts: VotersCounts{PollCardCount: 10, ProxyCertificateCount: 0, TotalAdmittedVotersCount: 10},
		VotesCounts: VotesCounts{
			PoliticalGroupTotalVotes:  []PoliticalGroupTotalVotes{{Number: 1, Total: 10}},
			TotalVotesCandidatesCount: 10,
			TotalVotesCastCount:       10,
		},
		DifferencesCounts: DifferencesCounts{Comparison: VotesCastComparison{AdmittedVotersEqualVotesCast: true}},
		PoliticalGroupVotes: []PoliticalGroupCandidateVotes{
			{Number: 1, Total: 10, CandidateVotes: []CandidateVotes{{Number: 1, Votes: 6}, {Number: 2, Votes: 4}}},
		},
	}
}

func TestCompareIdenticalIsEqual(t *testing.T) {
	a := sampleResults()
	b := sampleResults()
	cmp := Compare(a, b)
	assert.True(t, cmp.Equal)
	assert.Empty(t, cmp.DifferentPaths)
}

func TestCompareDetectsCandidateDifference(t *testing.T) {
	a := sampleResults()
	b := sampleResults()
	b.PoliticalGroupVotes[0].CandidateVotes[0].Votes = 5
	b.PoliticalGroupVotes[0].CandidateVotes[1].Votes = 5

	cmp := Compare(a, b)
	assert.False(t, cmp.Equal)
	assert.Contains(t, cmp.DifferentPaths, "data.political_group_votes[0].candidate_votes[0].votes")
	assert.Contains(t, cmp.DifferentPaths, "data.political_group_votes[0].candidate_votes[1].votes")
}

func TestCompareDifferentModelsAreUnequal(t *testing.T) {
	a := sampleResults()
	b := sampleResults()
	b.Model = ModelCSOFirstSession

	cmp := Compare(a, b)
	assert.False(t, cmp.Equal)
	assert.NotEmpty(t, cmp.DifferentPaths)
}

func TestSeedFromPreviousBlanksDifferencesSection(t *testing.T) {
	prev := sampleResults()
	prev.Model = ModelCSOFirstSession
	prev.DifferencesCounts.DifferenceCompletelyAccountedFor = YesNo{Yes: true}

	seeded := SeedFromPrevious(prev, ModelCSONextSession)
	assert.Equal(t, ModelCSONextSession, seeded.Model)
	assert.Equal(t, YesNo{}, seeded.DifferencesCounts.DifferenceCompletelyAccountedFor)
	assert.Equal(t, prev.PoliticalGroupVotes[0].Total, seeded.PoliticalGroupVotes[0].Total)
}
