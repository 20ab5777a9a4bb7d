// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	goccyjson "github.com/goccy/go-json"

	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/election"
)

// decodeJSON reads and validates a JSON request body into dst. It
// writes a 422 rejection and returns false on any decode or validation
// failure, so callers can return immediately.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := goccyjson.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeMalformed(w, "request body is required")
			return false
		}
		writeMalformed(w, "request body is not valid JSON")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeMalformed(w, err.Error())
		return false
	}
	return true
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type bootstrapFirstAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" validate:"required,oneof=administrator coordinator typist"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role" validate:"required,oneof=administrator coordinator typist"`
}

type dataEntrySaveRequest struct {
	Data        dataentry.Results `json:"data"`
	Progress    int               `json:"progress"`
	ClientState json.RawMessage   `json:"client_state"`
}

type investigationRequest struct {
	Reason                  string `json:"reason" validate:"required"`
	Findings                *string `json:"findings"`
	CorrectedResults        *bool   `json:"corrected_results"`
	Concluded               bool    `json:"concluded"`
	AcceptDataEntryDeletion bool    `json:"accept_data_entry_deletion"`
}

type committeeSessionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type candidateRequest struct {
	Number         int    `json:"number" validate:"required"`
	Initials       string `json:"initials"`
	FirstName      string `json:"first_name"`
	LastNamePrefix string `json:"last_name_prefix"`
	LastName       string `json:"last_name" validate:"required"`
	Locality       string `json:"locality"`
	CountryCode    string `json:"country_code"`
	Gender         string `json:"gender"`
}

type politicalGroupRequest struct {
	Number     int                `json:"number" validate:"required"`
	Name       string             `json:"name" validate:"required"`
	Candidates []candidateRequest `json:"candidates"`
}

type electionRequest struct {
	Name            string                  `json:"name" validate:"required"`
	Category        string                  `json:"category" validate:"required"`
	CountingMethod  string                  `json:"counting_method" validate:"required,oneof=central decentralized"`
	ElectionDate    time.Time               `json:"election_date" validate:"required"`
	NominationDate  time.Time               `json:"nomination_date"`
	NumberOfSeats   int                     `json:"number_of_seats" validate:"required"`
	NumberOfVoters  int                     `json:"number_of_voters"`
	PoliticalGroups []politicalGroupRequest `json:"political_groups"`
}

func (req electionRequest) toDomain(id int64) election.Election {
	groups := make([]election.PoliticalGroup, 0, len(req.PoliticalGroups))
	for _, g := range req.PoliticalGroups {
		candidates := make([]election.Candidate, 0, len(g.Candidates))
		for _, c := range g.Candidates {
			candidates = append(candidates, election.Candidate{
				Number:         c.Number,
				Initials:       c.Initials,
				FirstName:      c.FirstName,
				LastNamePrefix: c.LastNamePrefix,
				LastName:       c.LastName,
				Locality:       c.Locality,
				CountryCode:    c.CountryCode,
				Gender:         election.Gender(c.Gender),
			})
		}
		groups = append(groups, election.PoliticalGroup{Number: g.Number, Name: g.Name, Candidates: candidates})
	}
	return election.Election{
		ID:              id,
		Name:            req.Name,
		Category:        election.Category(req.Category),
		CountingMethod:  election.CountingMethod(req.CountingMethod),
		ElectionDate:    req.ElectionDate,
		NominationDate:  req.NominationDate,
		NumberOfSeats:   req.NumberOfSeats,
		NumberOfVoters:  req.NumberOfVoters,
		PoliticalGroups: groups,
	}
}

type pollingStationRequest struct {
	Number              int    `json:"number" validate:"required"`
	Street              string `json:"street"`
	HouseNumber         string `json:"house_number"`
	HouseNumberAddition string `json:"house_number_addition"`
	PostalCode          string `json:"postal_code"`
	Locality            string `json:"locality"`
	NumberOfVoters      *int   `json:"number_of_voters"`
	Type                string `json:"type" validate:"required"`
}

type committeeSessionRequest struct {
	Location       string     `json:"location"`
	ScheduledStart *time.Time `json:"scheduled_start"`
}
