// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmiddleware "github.com/centralbureau/tabulator/internal/middleware"
)

// wrapHandlerFunc adapts middleware written against the older
// http.HandlerFunc-wrapping style to chi's http.Handler middleware
// signature.
func wrapHandlerFunc(m func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m(next.ServeHTTP)
	}
}

// Router builds the full chi mux. gate, when non-nil, is the air-gap
// request admission middleware run ahead of every route (passed in by
// cmd/server, which owns the supervised air-gap detector); gate is nil
// when the caller wants no gate applied (used by tests).
func (s *Server) Router(gate func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", doNotExtendHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	if gate != nil {
		r.Use(gate)
	}
	r.Use(wrapHandlerFunc(appmiddleware.PrometheusMetrics))
	r.Use(wrapHandlerFunc(appmiddleware.Compression))

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/initialised", s.handleInitialised)
	r.Get("/api/initialise/admin-exists", s.handleInitialised)
	r.With(httprate.LimitByIP(5, time.Minute)).Post("/api/initialise/first-admin", s.handleBootstrapFirstAdmin)
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/api/logout", s.handleLogout)
		r.Get("/api/user/whoami", s.handleWhoami)
		r.Post("/api/user/change-password", s.handleChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(s.requirePasswordCurrent)

			r.Route("/api/users", func(r chi.Router) {
				r.Use(requireCanManageUsers(s.authz))
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Get("/{userID}", s.handleGetUser)
				r.Put("/{userID}", s.handleUpdateUser)
				r.Delete("/{userID}", s.handleDeleteUser)
			})

			r.Route("/api/elections", func(r chi.Router) {
				r.Get("/", s.handleListElections)
				r.Get("/{electionID}", s.handleGetElection)
				r.With(requireCoordinator()).Post("/", s.handleCreateElection)
				r.With(requireCoordinator()).Put("/{electionID}", s.handleUpdateElection)
				r.With(requireCoordinator()).Delete("/{electionID}", s.handleDeleteElection)

				r.Route("/{electionID}/polling_stations", func(r chi.Router) {
					r.Get("/", s.handleListPollingStations)
					r.With(requireCoordinator()).Post("/", s.handleCreatePollingStation)
					r.With(requireCoordinator()).Put("/{stationID}", s.handleUpdatePollingStation)
					r.With(requireCoordinator()).Delete("/{stationID}", s.handleDeletePollingStation)
				})

				r.Route("/{electionID}/committee_sessions", func(r chi.Router) {
					r.Get("/", s.handleListCommitteeSessions)
					r.With(requireCoordinator()).Post("/", s.handleCreateCommitteeSession)
					r.With(requireCoordinator()).Put("/{sessionID}", s.handleUpdateCommitteeSession)
					r.With(requireCoordinator()).Put("/{sessionID}/status", s.handleCommitteeSessionStatus)
					r.With(requireCoordinator()).Delete("/{sessionID}", s.handleDeleteCommitteeSession)

					r.With(requireCoordinator()).Get("/{sessionID}/download_zip_results", s.handleDownloadZipResults)
					r.With(requireCoordinator()).Get("/{sessionID}/download_pdf_results", s.handleDownloadPDFResults)
				})
			})

			r.Route("/api/polling_stations/{stationID}", func(r chi.Router) {
				r.Route("/data_entries/{entryNumber}", func(r chi.Router) {
					r.With(requireTypist()).Post("/claim", s.handleDataEntryClaim)
					r.With(requireTypist()).Post("/", s.handleDataEntrySave)
					r.With(requireTypist()).Post("/finalise", s.handleDataEntryFinalise)
					r.With(requireCoordinator()).Delete("/", s.handleDataEntryDelete)
					r.Get("/get", s.handleDataEntryGet)
				})
				r.With(requireCoordinator()).Delete("/data_entries", s.handleDataEntryDeleteBoth)
				r.With(requireCoordinator()).Post("/data_entries/resolve_errors", s.handleDataEntryResolveErrors)
				r.With(requireCoordinator()).Post("/data_entries/resolve_differences", s.handleDataEntryResolveDifferences)

				r.Route("/investigation", func(r chi.Router) {
					r.Use(requireCoordinator())
					r.Get("/", s.handleGetInvestigation)
					r.Post("/", s.handleCreateInvestigation)
					r.Put("/", s.handleUpdateInvestigation)
					r.Delete("/", s.handleDeleteInvestigation)
				})
			})

			r.Route("/api/log", func(r chi.Router) {
				r.Use(requireCanReadAuditLog(s.authz))
				r.Get("/", s.handleAuditLog)
			})
			r.Route("/api/log-users", func(r chi.Router) {
				r.Use(requireCanReadAuditLog(s.authz))
				r.Get("/", s.handleAuditLogUsers)
			})
		})
	})

	return r
}
