// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package dataentry implements the polling-station-results model and the
// per-station double-entry state machine that coordinates two
// independent typists and a coordinator over it.
package dataentry

import (
	"github.com/centralbureau/tabulator/internal/election"
)

// YesNo is a three-valued radio answer: unanswered, or an explicit yes or
// no. Both fields can be independently set (to represent the "both
// answered" validation error) so it is modelled as two booleans rather
// than an enum.
type YesNo struct {
	Yes bool
	No  bool
}

// Answered reports whether exactly one of Yes/No is set.
func (y YesNo) Answered() bool {
	return y.Yes != y.No && (y.Yes || y.No)
}

// Unanswered reports whether neither Yes nor No is set.
func (y YesNo) Unanswered() bool {
	return !y.Yes && !y.No
}

// BothAnswered reports whether both Yes and No are set, which is always
// a validation error.
func (y YesNo) BothAnswered() bool {
	return y.Yes && y.No
}

// ExtraInvestigation holds the CSO first-session-only "extra
// investigation" preconditions (Model Na 31-2 Bijlage 2, section B1-1).
type ExtraInvestigation struct {
	ExtraInvestigationOtherReason           YesNo
	ExtraInvestigationUnexplainedDifference YesNo
}

// CountingDifferencesPollingStation holds the CSO first-session-only
// "counting differences polling station" preconditions.
type CountingDifferencesPollingStation struct {
	UnexplainedDifferenceTotalVotes YesNo
	DifferenceBallotsPerList        YesNo
}

// VotersCounts are the raw admission counts for a station.
type VotersCounts struct {
	PollCardCount             uint64
	ProxyCertificateCount     uint64
	TotalAdmittedVotersCount  uint64
}

// CandidateVotes is the vote total for a single candidate.
type CandidateVotes struct {
	Number int
	Votes  uint64
}

// PoliticalGroupCandidateVotes holds one group's total and its per
// candidate breakdown, as keyed to the political-group votes section of
// the results.
type PoliticalGroupCandidateVotes struct {
	Number         int
	Total          uint64
	CandidateVotes []CandidateVotes
}

// SumCandidateVotes returns the sum of the per-candidate votes.
func (p PoliticalGroupCandidateVotes) SumCandidateVotes() uint64 {
	var sum uint64
	for _, c := range p.CandidateVotes {
		sum += c.Votes
	}
	return sum
}

// PoliticalGroupTotalVotes is the per-group entry inside VotesCounts.
type PoliticalGroupTotalVotes struct {
	Number int
	Total  uint64
}

// VotesCounts are the cast-vote totals for a station.
type VotesCounts struct {
	PoliticalGroupTotalVotes  []PoliticalGroupTotalVotes
	TotalVotesCandidatesCount uint64
	BlankVotesCount           uint64
	InvalidVotesCount         uint64
	TotalVotesCastCount       uint64
}

// SumPoliticalGroupTotals sums the per-group totals recorded here.
func (v VotesCounts) SumPoliticalGroupTotals() uint64 {
	var sum uint64
	for _, g := range v.PoliticalGroupTotalVotes {
		sum += g.Total
	}
	return sum
}

// VotesCastComparison is the three-way mutually exclusive comparison of
// total votes cast against total admitted voters.
type VotesCastComparison struct {
	AdmittedVotersEqualVotesCast       bool
	VotesCastGreaterThanAdmittedVoters bool
	VotesCastSmallerThanAdmittedVoters bool
}

// SelectedCount returns how many of the three flags are set.
func (c VotesCastComparison) SelectedCount() int {
	n := 0
	if c.AdmittedVotersEqualVotesCast {
		n++
	}
	if c.VotesCastGreaterThanAdmittedVoters {
		n++
	}
	if c.VotesCastSmallerThanAdmittedVoters {
		n++
	}
	return n
}

// DifferencesCounts holds the reconciliation of ballots vs. votes cast.
type DifferencesCounts struct {
	MoreBallotsCount                  uint64
	FewerBallotsCount                 uint64
	Comparison                        VotesCastComparison
	DifferenceCompletelyAccountedFor  YesNo
}

// Model identifies the polling-station-results variant.
type Model string

const (
	ModelCSOFirstSession Model = "CSOFirstSession"
	ModelCSONextSession  Model = "CSONextSession"
)

// Results is a tagged union over the two polling-station-results
// variants selected by (counting_method, session.is_next_session()).
// Only the fields relevant to Model are populated; the rest are
// zero-valued.
type Results struct {
	Model Model

	// ExtraInvestigationSection and CountingDifferencesSection are only
	// present (and only validated) when Model == ModelCSOFirstSession.
	ExtraInvestigationSection  ExtraInvestigation
	CountingDifferencesSection CountingDifferencesPollingStation

	VotersCounts      VotersCounts
	VotesCounts       VotesCounts
	DifferencesCounts DifferencesCounts

	PoliticalGroupVotes []PoliticalGroupCandidateVotes
}

// SelectModel determines which results variant applies for a polling
// station counted under the given method in a session at the given
// sequence number.
func SelectModel(method election.CountingMethod, sessionNumber int) Model {
	if method == election.CountingMethodCentral && !election.IsNextSession(sessionNumber) {
		return ModelCSOFirstSession
	}
	return ModelCSONextSession
}

// EmptyResults builds a zeroed Results value for the given model, with
// one zero-votes per-candidate row seeded per political group — the
// seed used for a fresh first session, or for a next session without
// carried-forward results.
func EmptyResults(model Model, groups []election.PoliticalGroup) Results {
	r := Results{Model: model}
	r.VotesCounts.PoliticalGroupTotalVotes = make([]PoliticalGroupTotalVotes, len(groups))
	r.PoliticalGroupVotes = make([]PoliticalGroupCandidateVotes, len(groups))
	for i, g := range groups {
		r.VotesCounts.PoliticalGroupTotalVotes[i] = PoliticalGroupTotalVotes{Number: g.Number, Total: 0}
		cv := make([]CandidateVotes, len(g.Candidates))
		for j, c := range g.Candidates {
			cv[j] = CandidateVotes{Number: c.Number, Votes: 0}
		}
		r.PoliticalGroupVotes[i] = PoliticalGroupCandidateVotes{Number: g.Number, Total: 0, CandidateVotes: cv}
	}
	return r
}

// SeedFromPrevious deep-copies a previous session's results into the
// shape required for claim_first on a next-session station, blanking the
// differences-section radio-group fields so they must be re-entered
// (§4.1 Entry seeding). Model is forced to the target model (CSO next
// sessions never carry an extra-investigation section).
func SeedFromPrevious(previous Results, targetModel Model) Results {
	seeded := previous
	seeded.Model = targetModel
	seeded.ExtraInvestigationSection = ExtraInvestigation{}
	seeded.CountingDifferencesSection = CountingDifferencesPollingStation{}
	seeded.DifferencesCounts.Comparison = VotesCastComparison{}
	seeded.DifferencesCounts.DifferenceCompletelyAccountedFor = YesNo{}

	pgv := make([]PoliticalGroupCandidateVotes, len(previous.PoliticalGroupVotes))
	for i, g := range previous.PoliticalGroupVotes {
		cv := make([]CandidateVotes, len(g.CandidateVotes))
		copy(cv, g.CandidateVotes)
		pgv[i] = PoliticalGroupCandidateVotes{Number: g.Number, Total: g.Total, CandidateVotes: cv}
	}
	seeded.PoliticalGroupVotes = pgv

	pgt := make([]PoliticalGroupTotalVotes, len(previous.VotesCounts.PoliticalGroupTotalVotes))
	copy(pgt, previous.VotesCounts.PoliticalGroupTotalVotes)
	seeded.VotesCounts.PoliticalGroupTotalVotes = pgt

	return seeded
}
