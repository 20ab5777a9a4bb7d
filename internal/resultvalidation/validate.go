// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package resultvalidation implements the F/W-coded structural
// validation engine run over a polling-station-results value. It is a
// pure function of its inputs: no I/O, no side effects, and it never
// mutates the value it inspects.
package resultvalidation

import (
	"sort"

	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/fieldpath"
)

// Code is an F-series (blocking) or W-series (informational) validation
// code.
type Code string

const (
	F101 Code = "F101"
	F102 Code = "F102"
	F111 Code = "F111"
	F112 Code = "F112"
	F201 Code = "F201"
	F202 Code = "F202"
	F203 Code = "F203"
	F301 Code = "F301"
	F302 Code = "F302"
	F303 Code = "F303"
	F304 Code = "F304"
	F305 Code = "F305"
	F306 Code = "F306"
	F307 Code = "F307"
	F308 Code = "F308"
	F309 Code = "F309"
	F310 Code = "F310"
	F401 Code = "F401"
	F402 Code = "F402"
	F403 Code = "F403"

	W201 Code = "W201"
	W202 Code = "W202"
	W203 Code = "W203"
	W204 Code = "W204"
)

// Result is a single finding: the code, and the field paths it concerns
// (in entry order).
type Result struct {
	Fields []string
	Code   Code
	// Context carries human-oriented detail for some codes (e.g. which
	// group number failed F401/F402/F403) without encoding it into the
	// path itself.
	Context map[string]any
}

// Results is the pair of lists produced by a validation pass.
type Results struct {
	Errors   []Result
	Warnings []Result
}

func newResult(code Code, context map[string]any, paths ...fieldpath.Path) Result {
	fields := make([]string, len(paths))
	for i, p := range paths {
		fields[i] = p.String()
	}
	return Result{Fields: fields, Code: code, Context: context}
}

// Validate computes the errors and warnings for res, given the election
// it belongs to (for the political-group roster).
func Validate(res dataentry.Results, el *election.Election) Results {
	v := &Results{}

	if res.Model == dataentry.ModelCSOFirstSession {
		validateExtraInvestigation(v, res.ExtraInvestigationSection)
		validateCountingDifferences(v, res.CountingDifferencesSection)
	}

	validateVoters(v, res.VotersCounts, res.VotesCounts)
	validateDifferences(v, res.VotersCounts, res.VotesCounts, res.DifferencesCounts)
	validateGroups(v, res.PoliticalGroupVotes, res.VotesCounts)
	validateWarnings(v, res.VotersCounts, res.VotesCounts)

	sortResults(v.Errors)
	sortResults(v.Warnings)
	return *v
}

func validateExtraInvestigation(v *Results, section dataentry.ExtraInvestigation) {
	base := fieldpath.Root("data").Field("extra_investigation")
	checkYesNoQuestion(v, base.Field("extra_investigation_other_reason"), section.ExtraInvestigationOtherReason, F101, F102)
	checkYesNoQuestion(v, base.Field("extra_investigation_unexplained_difference"), section.ExtraInvestigationUnexplainedDifference, F101, F102)
}

func validateCountingDifferences(v *Results, section dataentry.CountingDifferencesPollingStation) {
	base := fieldpath.Root("data").Field("counting_differences_polling_station")
	checkYesNoQuestion(v, base.Field("unexplained_difference_total_votes"), section.UnexplainedDifferenceTotalVotes, F111, F112)
	checkYesNoQuestion(v, base.Field("difference_ballots_per_list"), section.DifferenceBallotsPerList, F111, F112)
}

// checkYesNoQuestion appends unansweredCode if the question is
// unanswered, or bothAnsweredCode if both yes and no are set.
func checkYesNoQuestion(v *Results, path fieldpath.Path, q dataentry.YesNo, unansweredCode, bothAnsweredCode Code) {
	switch {
	case q.BothAnswered():
		v.Errors = append(v.Errors, newResult(bothAnsweredCode, nil, path))
	case q.Unanswered():
		v.Errors = append(v.Errors, newResult(unansweredCode, nil, path))
	}
}

func validateVoters(v *Results, voters dataentry.VotersCounts, votes dataentry.VotesCounts) {
	base := fieldpath.Root("data")

	if voters.PollCardCount+voters.ProxyCertificateCount != voters.TotalAdmittedVotersCount {
		v.Errors = append(v.Errors, newResult(F201, nil,
			base.Field("voters_counts").Field("poll_card_count"),
			base.Field("voters_counts").Field("proxy_certificate_count"),
			base.Field("voters_counts").Field("total_admitted_voters_count"),
		))
	}

	if votes.SumPoliticalGroupTotals() != votes.TotalVotesCandidatesCount {
		v.Errors = append(v.Errors, newResult(F202, nil,
			base.Field("votes_counts").Field("political_group_total_votes"),
			base.Field("votes_counts").Field("total_votes_candidates_count"),
		))
	}

	if votes.TotalVotesCandidatesCount+votes.BlankVotesCount+votes.InvalidVotesCount != votes.TotalVotesCastCount {
		v.Errors = append(v.Errors, newResult(F203, nil,
			base.Field("votes_counts").Field("total_votes_candidates_count"),
			base.Field("votes_counts").Field("blank_votes_count"),
			base.Field("votes_counts").Field("invalid_votes_count"),
			base.Field("votes_counts").Field("total_votes_cast_count"),
		))
	}
}

func validateDifferences(v *Results, voters dataentry.VotersCounts, votes dataentry.VotesCounts, diff dataentry.DifferencesCounts) {
	base := fieldpath.Root("data").Field("differences_counts")
	cmp := diff.Comparison
	admitted := voters.TotalAdmittedVotersCount
	cast := votes.TotalVotesCastCount

	if cmp.SelectedCount() != 1 {
		v.Errors = append(v.Errors, newResult(F304, nil, base.Field("comparison")))
		return
	}

	switch {
	case cmp.AdmittedVotersEqualVotesCast:
		if cast != admitted {
			v.Errors = append(v.Errors, newResult(F301, nil, base.Field("comparison").Field("admitted_voters_equal_votes_cast")))
		}
		if diff.MoreBallotsCount != 0 || diff.FewerBallotsCount != 0 {
			v.Errors = append(v.Errors, newResult(F305, nil,
				base.Field("more_ballots_count"), base.Field("fewer_ballots_count")))
		}

	case cmp.VotesCastGreaterThanAdmittedVoters:
		if cast <= admitted {
			v.Errors = append(v.Errors, newResult(F302, nil, base.Field("comparison").Field("votes_cast_greater_than_admitted_voters")))
		} else if diff.MoreBallotsCount != cast-admitted {
			v.Errors = append(v.Errors, newResult(F306, nil, base.Field("more_ballots_count")))
		}
		if diff.FewerBallotsCount != 0 {
			v.Errors = append(v.Errors, newResult(F307, nil, base.Field("fewer_ballots_count")))
		}

	case cmp.VotesCastSmallerThanAdmittedVoters:
		if cast >= admitted {
			v.Errors = append(v.Errors, newResult(F303, nil, base.Field("comparison").Field("votes_cast_smaller_than_admitted_voters")))
		} else if diff.FewerBallotsCount != admitted-cast {
			v.Errors = append(v.Errors, newResult(F308, nil, base.Field("fewer_ballots_count")))
		}
		if diff.MoreBallotsCount != 0 {
			v.Errors = append(v.Errors, newResult(F309, nil, base.Field("more_ballots_count")))
		}
	}

	if !cmp.AdmittedVotersEqualVotesCast {
		q := diff.DifferenceCompletelyAccountedFor
		if q.Unanswered() || q.BothAnswered() {
			v.Errors = append(v.Errors, newResult(F310, nil, base.Field("difference_completely_accounted_for")))
		}
	}
}

func validateGroups(v *Results, groups []dataentry.PoliticalGroupCandidateVotes, votes dataentry.VotesCounts) {
	totalsByNumber := make(map[int]uint64, len(votes.PoliticalGroupTotalVotes))
	for _, t := range votes.PoliticalGroupTotalVotes {
		totalsByNumber[t.Number] = t.Total
	}

	for i, g := range groups {
		base := fieldpath.Root("data").Field("political_group_votes").Index(i)
		ctx := map[string]any{"group_number": g.Number}

		hasNonZeroCandidate := false
		for _, c := range g.CandidateVotes {
			if c.Votes != 0 {
				hasNonZeroCandidate = true
				break
			}
		}

		if g.Total == 0 && hasNonZeroCandidate {
			v.Errors = append(v.Errors, newResult(F401, ctx, base.Field("total")))
			continue
		}

		if g.Total != g.SumCandidateVotes() {
			v.Errors = append(v.Errors, newResult(F402, ctx, base.Field("total")))
			continue
		}

		if recorded, ok := totalsByNumber[g.Number]; ok && recorded != g.Total {
			v.Errors = append(v.Errors, newResult(F403, ctx, base.Field("total")))
		}
	}
}

func validateWarnings(v *Results, voters dataentry.VotersCounts, votes dataentry.VotesCounts) {
	base := fieldpath.Root("data").Field("votes_counts")
	cast := votes.TotalVotesCastCount

	if cast == 0 {
		v.Warnings = append(v.Warnings, newResult(W204, nil, base.Field("total_votes_cast_count")))
		return
	}

	if votes.BlankVotesCount*100 >= cast*3 {
		v.Warnings = append(v.Warnings, newResult(W201, nil, base.Field("blank_votes_count")))
	}
	if votes.InvalidVotesCount*100 >= cast*3 {
		v.Warnings = append(v.Warnings, newResult(W202, nil, base.Field("invalid_votes_count")))
	}

	admitted := voters.TotalAdmittedVotersCount
	diff := int64(admitted) - int64(cast)
	if diff < 0 {
		diff = -diff
	}
	if diff*100 >= int64(admitted)*2 && diff >= 15 {
		v.Warnings = append(v.Warnings, newResult(W203, nil,
			fieldpath.Root("data").Field("voters_counts").Field("total_admitted_voters_count"),
			base.Field("total_votes_cast_count"),
		))
	}
}

func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Code < results[j].Code
	})
}
