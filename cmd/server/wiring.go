// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package main

import (
	"fmt"

	"github.com/tomtom215/lapiprice/internal/api"
	"github.com/tomtom215/lapiprice/internal/config"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/features"
	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/pricing"
	"github.com/tomtom215/lapiprice/internal/recommend"
)

// pricingConfig maps the training section onto the engine configuration.
func pricingConfig(cfg *config.Config) (*pricing.Config, error) {
	strategy, err := features.ParseStrategy(cfg.Features.Strategy)
	if err != nil {
		return nil, err
	}

	t := &cfg.Training
	families := make([]estimator.Family, 0, len(t.Families))
	for _, name := range t.Families {
		f, err := estimator.ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("training families: %w", err)
		}
		families = append(families, f)
	}

	pcfg := pricing.DefaultConfig()
	pcfg.Strategy = strategy
	pcfg.TestFraction = t.TestFraction
	pcfg.Seed = t.Seed
	pcfg.Families = families
	pcfg.Folds = t.Folds
	pcfg.Workers = t.Workers
	pcfg.IntervalLevel = t.IntervalLevel
	pcfg.BaseCurrency = t.BaseCurrency
	pcfg.Grids = map[estimator.Family]estimator.GridSpec{
		estimator.FamilyRandomForest:     estimator.GridSpec(t.RandomForest),
		estimator.FamilyGradientBoosting: estimator.GridSpec(t.GradientBoosting),
	}
	return pcfg, nil
}

func recommendConfig(r *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		DefaultLimit:      r.DefaultLimit,
		MaxLimit:          r.MaxLimit,
		ManufacturerBonus: r.ManufacturerBonus,
		DeviceClassBonus:  r.DeviceClassBonus,
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}

func historyConfig(h *config.HistoryConfig) history.Config {
	return history.Config{
		Backend:  history.Backend(h.Backend),
		Path:     h.Path,
		Capacity: h.Capacity,
	}
}

func handlerConfig(t *config.TrainingConfig) api.HandlerConfig {
	return api.HandlerConfig{
		TrainRatePerMinute: t.ManualRate,
		TrainBurst:         t.ManualBurst,
		TrainTimeout:       t.Timeout,
	}
}

func middlewareConfig(s *config.SecurityConfig) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = append([]string(nil), s.CORSOrigins...)
	mw.RateLimitRequests = s.RateLimitReqs
	mw.RateLimitWindow = s.RateLimitWindow
	mw.RateLimitDisabled = s.RateLimitDisabled
	mw.MaxBodyBytes = s.MaxBodyBytes
	return mw
}
