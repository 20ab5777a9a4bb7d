// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/centralbureau/tabulator/internal/aggregation"
	"github.com/centralbureau/tabulator/internal/apportionment"
	"github.com/centralbureau/tabulator/internal/artifact"
	"github.com/centralbureau/tabulator/internal/committeesession"
	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/eml"
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/logging"
	"github.com/centralbureau/tabulator/internal/repository"
)

// definitiveStationResults loads every polling station scoped to a
// committee session together with its definitive data-entry result,
// skipping stations that never reached StateDefinitive.
func (s *Server) definitiveStationResults(ctx context.Context, sessionID int64) ([]eml.StationResult, []aggregation.StationEntry, error) {
	stations, err := s.pollingStations.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.dataEntries.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	stationResults := make([]eml.StationResult, 0, len(stations))
	aggEntries := make([]aggregation.StationEntry, 0, len(stations))
	for _, st := range stations {
		entry, ok := entries[st.ID]
		if !ok || entry.Tag != dataentry.StateDefinitive {
			continue
		}
		ae := aggregation.StationEntry{PollingStationID: st.ID, Results: entry.FinalisedEntry}
		aggEntries = append(aggEntries, ae)
		stationResults = append(stationResults, eml.StationResult{Station: st, Entry: ae})
	}
	return stationResults, aggEntries, nil
}

// apportionResult runs seat apportionment over el's political groups
// using the given summary's totals, for inclusion in the results
// protocol. A contest with no definitive results yet cannot be
// apportioned; callers render the artifact without an apportionment
// when this returns an error.
func apportionResult(el election.Election, summary aggregation.Summary) (apportionment.Result, error) {
	candidateCounts := make(map[int]int, len(el.PoliticalGroups))
	for _, g := range el.PoliticalGroups {
		candidateCounts[g.Number] = len(g.Candidates)
	}
	lists := make([]apportionment.ListVotes, 0, len(summary.PoliticalGroupVotes))
	for _, g := range summary.PoliticalGroupVotes {
		lists = append(lists, apportionment.ListVotes{Number: g.Number, Votes: g.Total})
	}
	return apportionment.Assign(uint32(el.NumberOfSeats), lists, candidateCounts)
}

// resultsContestID derives a stable EML-NL contest identifier for a
// committee session; there is exactly one contest per session in this
// system, so the session ID is sufficient to make it unique.
func resultsContestID(cs committeesession.Session) string {
	return fmt.Sprintf("session-%d", cs.ID)
}

// generateResultsXML builds and hashes the EML-NL 510b document for a
// committee session's current definitive results. It does not persist
// the blob: callers that need it stored do so themselves, inside the
// same transaction as whatever triggered the generation.
func (s *Server) generateResultsXML(ctx context.Context, cs committeesession.Session, el election.Election) (content []byte, sha256Hex string, summary aggregation.Summary, err error) {
	stationResults, aggEntries, err := s.definitiveStationResults(ctx, cs.ID)
	if err != nil {
		return nil, "", aggregation.Summary{}, err
	}
	summary = aggregation.Summarize(aggEntries)
	doc := eml.ProduceResults510b(el, resultsContestID(cs), stationResults, summary, uuid.New().String(), time.Now().UTC())
	content, sha256Hex, err = eml.Marshal(doc)
	return content, sha256Hex, summary, err
}

// loadElectionAndSession resolves the election and committee session a
// results download is scoped to, checking that the session belongs to
// the requested election.
func (s *Server) loadElectionAndSession(ctx context.Context, electionID, sessionID int64) (election.Election, committeesession.Session, error) {
	cs, err := s.committeeSessions.Get(ctx, sessionID)
	if err != nil {
		return election.Election{}, committeesession.Session{}, err
	}
	if cs.ElectionID != electionID {
		return election.Election{}, committeesession.Session{}, repository.ErrNotFound
	}
	el, err := s.elections.Get(ctx, cs.ElectionID)
	if err != nil {
		return election.Election{}, committeesession.Session{}, err
	}
	return el, cs, nil
}

func (s *Server) handleDownloadZipResults(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	sessionID, ok := pathInt64(w, r, "sessionID")
	if !ok {
		return
	}
	el, cs, err := s.loadElectionAndSession(r.Context(), electionID, sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	xmlContent, sha256Hex, summary, err := s.generateResultsXML(r.Context(), cs, el)
	if err != nil {
		writeInternal(w, err)
		return
	}
	apportioned, apErr := apportionResult(el, summary)
	var apportionmentResult *apportionment.Result
	if apErr == nil {
		apportionmentResult = &apportioned
	}

	pdfContent, err := s.renderer.RenderResultsPDF(r.Context(), artifact.ResultsPDFInput{
		Election:         el,
		ContestID:        resultsContestID(cs),
		Summary:          summary,
		Apportionment:    apportionmentResult,
		ResultsXMLSHA256: sha256Hex,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logging.Error().Err(err).Msg("pdf renderer unavailable for zip download")
		writeRejection(w, http.StatusServiceUnavailable, false, "no PDF renderer is configured for this deployment", refArtifactUnavailable)
		return
	}

	inner, err := artifact.Zip(map[string][]byte{
		"results.eml.xml": xmlContent,
		"results.pdf":     pdfContent,
	})
	if err != nil {
		writeInternal(w, err)
		return
	}
	outer, err := artifact.Zip(map[string][]byte{"results.zip": inner})
	if err != nil {
		writeInternal(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="session-%d-results.zip"`, cs.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(outer)
}

func (s *Server) handleDownloadPDFResults(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathInt64(w, r, "electionID")
	if !ok {
		return
	}
	sessionID, ok := pathInt64(w, r, "sessionID")
	if !ok {
		return
	}
	el, cs, err := s.loadElectionAndSession(r.Context(), electionID, sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	_, sha256Hex, summary, err := s.generateResultsXML(r.Context(), cs, el)
	if err != nil {
		writeInternal(w, err)
		return
	}
	apportioned, apErr := apportionResult(el, summary)
	var apportionmentResult *apportionment.Result
	if apErr == nil {
		apportionmentResult = &apportioned
	}

	pdfContent, err := s.renderer.RenderResultsPDF(r.Context(), artifact.ResultsPDFInput{
		Election:         el,
		ContestID:        resultsContestID(cs),
		Summary:          summary,
		Apportionment:    apportionmentResult,
		ResultsXMLSHA256: sha256Hex,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logging.Error().Err(err).Msg("pdf renderer unavailable for pdf download")
		writeRejection(w, http.StatusServiceUnavailable, false, "no PDF renderer is configured for this deployment", refArtifactUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="session-%d-results.pdf"`, cs.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfContent)
}
