// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/centralbureau/tabulator/internal/artifact"
	"github.com/centralbureau/tabulator/internal/audit"
	"github.com/centralbureau/tabulator/internal/auth"
	"github.com/centralbureau/tabulator/internal/authz"
	"github.com/centralbureau/tabulator/internal/config"
	"github.com/centralbureau/tabulator/internal/repository"
)

// Server holds every dependency the HTTP handlers need: the repository
// set, the auth and authz services, and the shared request validator.
type Server struct {
	db *repository.DB

	elections         *repository.ElectionRepository
	pollingStations   *repository.PollingStationRepository
	committeeSessions *repository.CommitteeSessionRepository
	dataEntries       *repository.DataEntryRepository
	investigations    *repository.InvestigationRepository
	blobs             *repository.BlobRepository
	auditStore        *audit.DuckDBStore

	auth     *auth.Service
	authz    *authz.Enforcer
	cfg      config.SecurityConfig
	renderer artifact.Renderer

	validate *validator.Validate
}

// NewServer wires a Server from its repositories and services. renderer
// may be nil, in which case PDF downloads fail with artifact.ErrNoRenderer
// until a real one is supplied.
func NewServer(
	db *repository.DB,
	elections *repository.ElectionRepository,
	pollingStations *repository.PollingStationRepository,
	committeeSessions *repository.CommitteeSessionRepository,
	dataEntries *repository.DataEntryRepository,
	investigations *repository.InvestigationRepository,
	blobs *repository.BlobRepository,
	authSvc *auth.Service,
	enforcer *authz.Enforcer,
	cfg config.SecurityConfig,
	renderer artifact.Renderer,
) *Server {
	if renderer == nil {
		renderer = artifact.NullRenderer{}
	}
	return &Server{
		db:                db,
		elections:         elections,
		pollingStations:   pollingStations,
		committeeSessions: committeeSessions,
		dataEntries:       dataEntries,
		investigations:    investigations,
		blobs:             blobs,
		auditStore:        db.Audit,
		auth:              authSvc,
		authz:             enforcer,
		cfg:               cfg,
		renderer:          renderer,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
	}
}
