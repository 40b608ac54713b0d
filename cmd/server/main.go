// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

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

	"github.com/tomtom215/lapiprice/internal/api"
	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/config"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/logging"
	"github.com/tomtom215/lapiprice/internal/middleware"
	"github.com/tomtom215/lapiprice/internal/pricing"
	"github.com/tomtom215/lapiprice/internal/recommend"
	"github.com/tomtom215/lapiprice/internal/supervisor"
	"github.com/tomtom215/lapiprice/internal/supervisor/services"
)

// performanceWindow is the number of requests kept by the performance monitor.
const performanceWindow = 1000

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("model_dir", cfg.Artifacts.Dir).
		Str("history_backend", cfg.History.Backend).
		Strs("families", cfg.Training.Families).
		Msg("Starting LapiPrice with supervisor tree")

	cat, err := catalog.NewLoader(cfg.Catalog.Encodings, logger).LoadFile(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	logging.Info().
		Int("rows", cat.Len()).
		Str("encoding", cat.Encoding()).
		Msg("Catalog loaded")

	store, err := artifact.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}
	repo := estimator.NewRepository(store)
	repo.SetRetention(cfg.Artifacts.Keep)

	hist, err := history.Open(historyConfig(&cfg.History))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open prediction history")
	}
	defer func() {
		if err := hist.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing prediction history")
		}
	}()

	pcfg, err := pricingConfig(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid training configuration")
	}
	engine, err := pricing.NewEngine(pcfg, cat, repo, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create pricing engine")
	}

	recommender, err := recommend.NewEngine(recommendConfig(&cfg.Recommend), cat, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetRecommender(recommender)

	perfMon := middleware.NewPerformanceMonitor(performanceWindow, time.Second, logger)
	handler := api.NewHandler(engine, hist, perfMon, handlerConfig(&cfg.Training), logger)
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddleware(middlewareConfig(&cfg.Security)))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		// Synchronous training (?wait=true) is bounded by the training
		// timeout, not the request timeout.
		WriteTimeout: maxDuration(cfg.Server.Timeout, cfg.Training.Timeout),
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddModelService(services.NewTrainingService(engine, services.TrainingServiceConfig{
		OnStartup:       cfg.Training.OnStartup,
		RetrainInterval: cfg.Training.RetrainInterval,
		Timeout:         cfg.Training.Timeout,
	}, logger))
	if gc, ok := hist.(services.GarbageCollector); ok {
		tree.AddModelService(services.NewHistoryGCService(gc, cfg.History.GCInterval, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
