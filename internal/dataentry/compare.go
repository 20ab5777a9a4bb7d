// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package dataentry

import "github.com/centralbureau/tabulator/internal/fieldpath"

// Comparison is the outcome of comparing two results entries for
// finalisation: whether they are equal, and a side-channel list of the
// field paths that differ (not part of the equality decision). The list
// is returned only to the caller of Compare; Status has no field for it
// and it is not stored with EntriesDifferent.
type Comparison struct {
	Equal         bool
	DifferentPaths []string
}

// Compare reports whether first and second are equal for the purpose of
// finalisation and, regardless of the outcome, the flat list of field
// paths where they differ.
func Compare(first, second Results) Comparison {
	if first.Model != second.Model {
		return Comparison{Equal: false, DifferentPaths: []string{fieldpath.Root("data").String()}}
	}

	var diffs []string
	root := fieldpath.Root("data")

	if first.Model == ModelCSOFirstSession {
		diffs = append(diffs, compareYesNoSection(root.Field("extra_investigation"),
			[]namedYesNo{
				{"extra_investigation_other_reason", first.ExtraInvestigationSection.ExtraInvestigationOtherReason, second.ExtraInvestigationSection.ExtraInvestigationOtherReason},
				{"extra_investigation_unexplained_difference", first.ExtraInvestigationSection.ExtraInvestigationUnexplainedDifference, second.ExtraInvestigationSection.ExtraInvestigationUnexplainedDifference},
			})...)
		diffs = append(diffs, compareYesNoSection(root.Field("counting_differences_polling_station"),
			[]namedYesNo{
				{"unexplained_difference_total_votes", first.CountingDifferencesSection.UnexplainedDifferenceTotalVotes, second.CountingDifferencesSection.UnexplainedDifferenceTotalVotes},
				{"difference_ballots_per_list", first.CountingDifferencesSection.DifferenceBallotsPerList, second.CountingDifferencesSection.DifferenceBallotsPerList},
			})...)
	}

	diffs = append(diffs, compareVotersCounts(root.Field("voters_counts"), first.VotersCounts, second.VotersCounts)...)
	diffs = append(diffs, compareVotesCounts(root.Field("votes_counts"), first.VotesCounts, second.VotesCounts)...)
	diffs = append(diffs, compareDifferencesCounts(root.Field("differences_counts"), first.DifferencesCounts, second.DifferencesCounts)...)
	diffs = append(diffs, comparePoliticalGroupVotes(root.Field("political_group_votes"), first.PoliticalGroupVotes, second.PoliticalGroupVotes)...)

	return Comparison{Equal: len(diffs) == 0, DifferentPaths: diffs}
}

type namedYesNo struct {
	name          string
	first, second YesNo
}

func compareYesNoSection(base fieldpath.Path, pairs []namedYesNo) []string {
	var diffs []string
	for _, p := range pairs {
		if p.first != p.second {
			diffs = append(diffs, base.Field(p.name).String())
		}
	}
	return diffs
}

func compareVotersCounts(base fieldpath.Path, a, b VotersCounts) []string {
	var diffs []string
	if a.PollCardCount != b.PollCardCount {
		diffs = append(diffs, base.Field("poll_card_count").String())
	}
	if a.ProxyCertificateCount != b.ProxyCertificateCount {
		diffs = append(diffs, base.Field("proxy_certificate_count").String())
	}
	if a.TotalAdmittedVotersCount != b.TotalAdmittedVotersCount {
		diffs = append(diffs, base.Field("total_admitted_voters_count").String())
	}
	return diffs
}

func compareVotesCounts(base fieldpath.Path, a, b VotesCounts) []string {
	var diffs []string

	groupTotalsB := make(map[int]uint64, len(b.PoliticalGroupTotalVotes))
	for _, g := range b.PoliticalGroupTotalVotes {
		groupTotalsB[g.Number] = g.Total
	}
	path := base.Field("political_group_total_votes")
	for i, g := range a.PoliticalGroupTotalVotes {
		if bt, ok := groupTotalsB[g.Number]; !ok || bt != g.Total {
			diffs = append(diffs, path.Index(i).Field("total").String())
		}
	}

	if a.TotalVotesCandidatesCount != b.TotalVotesCandidatesCount {
		diffs = append(diffs, base.Field("total_votes_candidates_count").String())
	}
	if a.BlankVotesCount != b.BlankVotesCount {
		diffs = append(diffs, base.Field("blank_votes_count").String())
	}
	if a.InvalidVotesCount != b.InvalidVotesCount {
		diffs = append(diffs, base.Field("invalid_votes_count").String())
	}
	if a.TotalVotesCastCount != b.TotalVotesCastCount {
		diffs = append(diffs, base.Field("total_votes_cast_count").String())
	}
	return diffs
}

func compareDifferencesCounts(base fieldpath.Path, a, b DifferencesCounts) []string {
	var diffs []string
	if a.MoreBallotsCount != b.MoreBallotsCount {
		diffs = append(diffs, base.Field("more_ballots_count").String())
	}
	if a.FewerBallotsCount != b.FewerBallotsCount {
		diffs = append(diffs, base.Field("fewer_ballots_count").String())
	}
	if a.Comparison != b.Comparison {
		diffs = append(diffs, base.Field("comparison").String())
	}
	if a.DifferenceCompletelyAccountedFor != b.DifferenceCompletelyAccountedFor {
		diffs = append(diffs, base.Field("difference_completely_accounted_for").String())
	}
	return diffs
}

func comparePoliticalGroupVotes(base fieldpath.Path, a, b []PoliticalGroupCandidateVotes) []string {
	var diffs []string
	byNumber := make(map[int]PoliticalGroupCandidateVotes, len(b))
	for _, g := range b {
		byNumber[g.Number] = g
	}

	for i, ga := range a {
		gb, ok := byNumber[ga.Number]
		path := base.Index(i)
		if !ok {
			diffs = append(diffs, path.String())
			continue
		}
		if ga.Total != gb.Total {
			diffs = append(diffs, path.Field("total").String())
		}
		candidatesB := make(map[int]uint64, len(gb.CandidateVotes))
		for _, c := range gb.CandidateVotes {
			candidatesB[c.Number] = c.Votes
		}
		for j, ca := range ga.CandidateVotes {
			if cb, ok := candidatesB[ca.Number]; !ok || cb != ca.Votes {
				diffs = append(diffs, path.Field("candidate_votes").Index(j).Field("votes").String())
			}
		}
	}
	return diffs
}
