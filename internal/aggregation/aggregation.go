// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package aggregation sums per-polling-station definitive results into
// an election-level summary.
package aggregation

import "github.com/centralbureau/tabulator/internal/dataentry"

// StationEntry pairs a definitive results entry with the polling
// station ID it belongs to, for producing the per-station listing
// alongside the summed total.
type StationEntry struct {
	PollingStationID int64
	Results          dataentry.Results
}

// Summary is an election-level (or, for carried-forward side-by-side
// rendering, a previous-session) aggregate over all of a session's
// definitive entries.
type Summary struct {
	VotersCounts        dataentry.VotersCounts
	VotesCounts         dataentry.VotesCounts
	MoreBallotsCount    uint64
	FewerBallotsCount   uint64
	PoliticalGroupVotes []dataentry.PoliticalGroupCandidateVotes
	PerStation          []StationEntry
}

// Summarize sums the given station entries into an election-level
// Summary. Only more_ballots_count and fewer_ballots_count are summed
// from each station's differences counts — the radio-group flags are
// per-station preconditions and do not aggregate.
func Summarize(entries []StationEntry) Summary {
	summary := Summary{PerStation: entries}

	groupTotals := map[int]*dataentry.PoliticalGroupCandidateVotes{}
	var groupOrder []int

	for _, e := range entries {
		r := e.Results
		summary.VotersCounts.PollCardCount += r.VotersCounts.PollCardCount
		summary.VotersCounts.ProxyCertificateCount += r.VotersCounts.ProxyCertificateCount
		summary.VotersCounts.TotalAdmittedVotersCount += r.VotersCounts.TotalAdmittedVotersCount

		summary.VotesCounts.TotalVotesCandidatesCount += r.VotesCounts.TotalVotesCandidatesCount
		summary.VotesCounts.BlankVotesCount += r.VotesCounts.BlankVotesCount
		summary.VotesCounts.InvalidVotesCount += r.VotesCounts.InvalidVotesCount
		summary.VotesCounts.TotalVotesCastCount += r.VotesCounts.TotalVotesCastCount

		summary.MoreBallotsCount += r.DifferencesCounts.MoreBallotsCount
		summary.FewerBallotsCount += r.DifferencesCounts.FewerBallotsCount

		for _, g := range r.PoliticalGroupVotes {
			existing, ok := groupTotals[g.Number]
			if !ok {
				candidates := make([]dataentry.CandidateVotes, len(g.CandidateVotes))
				copy(candidates, g.CandidateVotes)
				for i := range candidates {
					candidates[i].Votes = 0
				}
				existing = &dataentry.PoliticalGroupCandidateVotes{Number: g.Number, CandidateVotes: candidates}
				groupTotals[g.Number] = existing
				groupOrder = append(groupOrder, g.Number)
			}
			existing.Total += g.Total
			candidatesByNumber := make(map[int]int, len(existing.CandidateVotes))
			for i, c := range existing.CandidateVotes {
				candidatesByNumber[c.Number] = i
			}
			for _, c := range g.CandidateVotes {
				if i, ok := candidatesByNumber[c.Number]; ok {
					existing.CandidateVotes[i].Votes += c.Votes
				} else {
					existing.CandidateVotes = append(existing.CandidateVotes, c)
					candidatesByNumber[c.Number] = len(existing.CandidateVotes) - 1
				}
			}
		}
	}

	summary.VotesCounts.PoliticalGroupTotalVotes = make([]dataentry.PoliticalGroupTotalVotes, 0, len(groupOrder))
	summary.PoliticalGroupVotes = make([]dataentry.PoliticalGroupCandidateVotes, 0, len(groupOrder))
	for _, n := range groupOrder {
		g := groupTotals[n]
		summary.VotesCounts.PoliticalGroupTotalVotes = append(summary.VotesCounts.PoliticalGroupTotalVotes,
			dataentry.PoliticalGroupTotalVotes{Number: g.Number, Total: g.Total})
		summary.PoliticalGroupVotes = append(summary.PoliticalGroupVotes, *g)
	}

	return summary
}

// ValidVoteTotals extracts a per-group total-votes map suitable as input
// to the apportionment quota computation.
func (s Summary) ValidVoteTotals() map[int]uint64 {
	out := make(map[int]uint64, len(s.VotesCounts.PoliticalGroupTotalVotes))
	for _, g := range s.VotesCounts.PoliticalGroupTotalVotes {
		out[g.Number] = g.Total
	}
	return out
}
