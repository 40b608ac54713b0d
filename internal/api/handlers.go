// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/middleware"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// HandlerConfig tunes handler behaviour.
type HandlerConfig struct {
	// TrainRatePerMinute limits POST /models/train across all clients.
	TrainRatePerMinute float64

	// TrainBurst is the number of training requests allowed at once.
	TrainBurst int

	// TrainTimeout bounds one background training run.
	TrainTimeout time.Duration
}

// DefaultHandlerConfig returns the handler defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		TrainRatePerMinute: 2,
		TrainBurst:         1,
		TrainTimeout:       30 * time.Minute,
	}
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: liveness, readiness and performance
//   - handlers_pricing.go: encode, predict, currencies
//   - handlers_recommend.go: recommend and compare
//   - handlers_models.go: training and stored models
//   - handlers_history.go: prediction history
//   - handlers_catalog.go: catalog summary and facets
type Handler struct {
	engine       *pricing.Engine
	history      history.Store
	perfMon      *middleware.PerformanceMonitor
	trainLimiter *rate.Limiter
	config       HandlerConfig
	startTime    time.Time
	logger       zerolog.Logger

	// Background training runs are bound to bgCtx so Close can stop them.
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// NewHandler creates the API handler. A nil history store is replaced by an
// in-memory store of the default capacity; perfMon may be nil.
//
// Example:
//
//	handler := api.NewHandler(engine, store, perfMon, api.DefaultHandlerConfig(), logger)
//	defer handler.Close()
//	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))
//	http.ListenAndServe(":8473", router.SetupChi())
func NewHandler(engine *pricing.Engine, store history.Store, perfMon *middleware.PerformanceMonitor, cfg HandlerConfig, logger zerolog.Logger) *Handler {
	if store == nil {
		store = history.NewMemoryStore(history.DefaultCapacity)
	}
	if cfg.TrainRatePerMinute <= 0 {
		cfg.TrainRatePerMinute = DefaultHandlerConfig().TrainRatePerMinute
	}
	if cfg.TrainBurst < 1 {
		cfg.TrainBurst = 1
	}
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = DefaultHandlerConfig().TrainTimeout
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	return &Handler{
		engine:       engine,
		history:      store,
		perfMon:      perfMon,
		trainLimiter: rate.NewLimiter(rate.Limit(cfg.TrainRatePerMinute/60), cfg.TrainBurst),
		config:       cfg,
		startTime:    time.Now(),
		logger:       logger.With().Str("component", "api").Logger(),
		bgCtx:        bgCtx,
		bgCancel:     bgCancel,
	}
}

// Close cancels background training started through the API and waits for
// it to return.
func (h *Handler) Close() {
	h.bgCancel()
	h.bgWG.Wait()
}
