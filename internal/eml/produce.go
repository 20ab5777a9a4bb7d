// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package eml

import (
	"fmt"
	"time"

	"github.com/centralbureau/tabulator/internal/aggregation"
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/pollingstation"
)

// reasonBlank and reasonInvalid are the EML-NL rejected-votes reason
// codes this system reports; the schema allows more, but only blank and
// invalid ballots are distinguished here.
const (
	reasonBlank   = "blanco"
	reasonInvalid = "ongeldig"
)

// StationResult pairs one polling station with its finalised results, the
// unit of input ProduceResults510b iterates over to build the per-station
// breakdown.
type StationResult struct {
	Station pollingstation.PollingStation
	Entry   aggregation.StationEntry
}

// ProduceResults510b builds the 510b vote-count document for el's single
// contest, from the committee session's finalised per-station results
// and their election-wide summary. transactionID and createdAt are
// supplied by the caller so this function stays deterministic and
// unaware of wall-clock time.
func ProduceResults510b(el election.Election, contestID string, stations []StationResult, summary aggregation.Summary, transactionID string, createdAt time.Time) Results510b {
	groupName := func(number int) string {
		if g, ok := el.GroupByNumber(number); ok {
			return g.Name
		}
		return ""
	}

	totalSelections := make([]Selection, 0, len(summary.PoliticalGroupVotes))
	for _, group := range summary.PoliticalGroupVotes {
		totalSelections = append(totalSelections, affiliationSelection(group.Number, groupName(group.Number), group.Total))
		for _, c := range group.CandidateVotes {
			totalSelections = append(totalSelections, candidateSelection(fmt.Sprintf("%d-%d", group.Number, c.Number), c.Votes))
		}
	}

	reportingUnits := make([]ReportingUnitVotes, 0, len(stations))
	for _, sr := range stations {
		selections := make([]Selection, 0, len(sr.Entry.Results.PoliticalGroupVotes))
		for _, group := range sr.Entry.Results.PoliticalGroupVotes {
			selections = append(selections, affiliationSelection(group.Number, groupName(group.Number), group.Total))
			for _, c := range group.CandidateVotes {
				selections = append(selections, candidateSelection(fmt.Sprintf("%d-%d", group.Number, c.Number), c.Votes))
			}
		}

		reportingUnits = append(reportingUnits, ReportingUnitVotes{
			ReportingUnitIdentifier: ReportingUnitIdentifier{
				ID:   fmt.Sprintf("%d", sr.Station.ID),
				Name: fmt.Sprintf("Stembureau %d", sr.Station.Number),
			},
			Selections:   selections,
			Cast:         sr.Entry.Results.VotersCounts.TotalAdmittedVotersCount,
			TotalCounted: sr.Entry.Results.VotesCounts.TotalVotesCastCount,
			RejectedVotes: []RejectedVotes{
				{ReasonCode: reasonBlank, Count: sr.Entry.Results.VotesCounts.BlankVotesCount},
				{ReasonCode: reasonInvalid, Count: sr.Entry.Results.VotesCounts.InvalidVotesCount},
			},
		})
	}

	return Results510b{
		IDAttr:           "510b",
		SchemaVersion:    "7.0.0",
		TransactionID:    transactionID,
		CreationDateTime: createdAt.UTC().Format(time.RFC3339),
		Count: Count{
			EventIdentifier: EventIdentifier{},
			Election: Election{
				ElectionIdentifier: ElectionIdentifier{
					ID:               fmt.Sprintf("%d", el.ID),
					ElectionName:     el.Name,
					ElectionCategory: string(el.Category),
					ElectionDate:     el.ElectionDate.Format("2006-01-02"),
				},
				Contests: []Contest{{
					ContestIdentifier: ContestIdentifier{ID: contestID},
					TotalVotes: TotalVotes{
						Selections:   totalSelections,
						Cast:         summary.VotersCounts.TotalAdmittedVotersCount,
						TotalCounted: summary.VotesCounts.TotalVotesCastCount,
						RejectedVotes: []RejectedVotes{
							{ReasonCode: reasonBlank, Count: summary.VotesCounts.BlankVotesCount},
							{ReasonCode: reasonInvalid, Count: summary.VotesCounts.InvalidVotesCount},
						},
					},
					ReportingUnitVotes: reportingUnits,
				}},
			},
		},
	}
}

func affiliationSelection(number int, name string, votes uint64) Selection {
	return Selection{
		Affiliation: &AffiliationIdentifier{ID: fmt.Sprintf("%d", number), RegisteredName: name},
		ValidVotes:  votes,
	}
}

func candidateSelection(id string, votes uint64) Selection {
	return Selection{
		Candidate:  &CandidateSelector{CandidateIdentifier: CandidateIdentifier510b{ID: id}},
		ValidVotes: votes,
	}
}
