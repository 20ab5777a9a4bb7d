// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centralbureau/tabulator/internal/airgap"
	"github.com/centralbureau/tabulator/internal/api"
	"github.com/centralbureau/tabulator/internal/auth"
	"github.com/centralbureau/tabulator/internal/authz"
	"github.com/centralbureau/tabulator/internal/config"
	"github.com/centralbureau/tabulator/internal/logging"
	"github.com/centralbureau/tabulator/internal/repository"
	"github.com/centralbureau/tabulator/internal/supervisor"
	"github.com/centralbureau/tabulator/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().Str("db_path", cfg.Database.Path).Int("port", cfg.Server.Port).Msg("starting tabulator")

	db, err := repository.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing database")
		}
	}()

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	elections := repository.NewElectionRepository(db)
	pollingStations := repository.NewPollingStationRepository(db)
	committeeSessions := repository.NewCommitteeSessionRepository(db)
	dataEntries := repository.NewDataEntryRepository(db)
	investigations := repository.NewInvestigationRepository(db)
	blobs := repository.NewBlobRepository(db)

	authSvc := auth.NewService(db, users, sessions, cfg.Security)

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize authorization enforcer")
	}

	// No Renderer is wired here: PDF rendering is an out-of-process
	// collaborator this core never implements (see internal/artifact).
	// A deployment that needs working artifact downloads supplies one.
	server := api.NewServer(db, elections, pollingStations, committeeSessions,
		dataEntries, investigations, blobs, authSvc, enforcer, cfg.Security, nil)

	var detector *airgap.Detector
	if cfg.Airgap.Detection {
		detector = airgap.New(cfg.Airgap.ProbeInterval)
	} else {
		detector = airgap.Nop()
		logging.Warn().Msg("air-gap detection disabled (AIRGAP_DETECTION=false) — test-only configuration")
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(airgap.RequestAdmissionGate(detector)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	tree.AddBackgroundService(airgap.NewMonitorService(detector))
	tree.AddBackgroundService(services.NewSessionSweepService(db, sessions, 0))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("application stopped gracefully")
}
