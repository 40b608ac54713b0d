// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/lapiprice/internal/cache"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/features"
	"github.com/tomtom215/lapiprice/internal/metrics"
)

// Engine ranks catalog entries by similarity to a query specification.
// The catalog and its scaler are fixed at construction, so an Engine is safe
// for concurrent use without locking.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog *catalog.Catalog
	scaler  *features.StandardScaler

	// standardized numeric vectors, parallel to the catalog
	vectors [][]float64

	cache *cache.LRU[string, []Recommendation]
}

// NewEngine creates a recommendation engine over cat. The numeric scaler is
// fitted on the whole catalog once.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat *catalog.Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: cat,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[string, []Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	if cat.Len() > 0 {
		raw := make([][]float64, cat.Len())
		for i := range raw {
			raw[i] = numericVector(cat.At(i).Spec)
		}
		scaler, err := features.FitStandardScaler(raw)
		if err != nil {
			return nil, fmt.Errorf("fit similarity scaler: %w", err)
		}
		e.scaler = scaler
		e.vectors = make([][]float64, len(raw))
		for i, row := range raw {
			e.vectors[i] = scaler.Transform(row)
		}
	}

	e.logger.Info().
		Int("entries", cat.Len()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("recommendation engine ready")
	return e, nil
}

// numericVector returns the similarity features of s.
func numericVector(s catalog.Specification) []float64 {
	return []float64{s.ScreenSize, float64(s.RAM), s.Weight}
}

// Config returns a copy of the configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Limit resolves a requested result count against the configured defaults.
func (e *Engine) Limit(requested int) int {
	switch {
	case requested <= 0:
		return e.config.DefaultLimit
	case requested > e.config.MaxLimit:
		return e.config.MaxLimit
	default:
		return requested
	}
}

// Rank returns the limit catalog entries most similar to query, best first.
// The score is the cosine similarity of standardized (screen size, RAM,
// weight) plus a bonus for each of manufacturer and device class matching
// the query. Entries with equal scores keep catalog order. An empty catalog
// yields an empty result.
//
//nolint:gocritic // query passed by value for immutability
func (e *Engine) Rank(ctx context.Context, query catalog.Specification, limit int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecommendationDuration.Observe(time.Since(start).Seconds()) }()

	limit = e.Limit(limit)
	// An absent manufacturer or device class earns no bonus. Normalizing it
	// to Unknown would match every imputed catalog row.
	query.Manufacturer = strings.TrimSpace(query.Manufacturer)
	query.DeviceClass = strings.TrimSpace(query.DeviceClass)
	if e.catalog.Len() == 0 {
		return []Recommendation{}, nil
	}

	key := cacheKey(query, limit)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			metrics.RecommendCacheHits.Inc()
			return append([]Recommendation(nil), cached...), nil
		}
		metrics.RecommendCacheMisses.Inc()
	}

	q := e.scaler.Transform(numericVector(query))
	qNorm := floats.Norm(q, 2)

	results := make([]Recommendation, e.catalog.Len())
	for i, v := range e.vectors {
		entry := e.catalog.At(i)
		sim := cosine(v, q, qNorm)
		bonus := 0.0
		if query.Manufacturer != "" && entry.Spec.Manufacturer == query.Manufacturer {
			bonus += e.config.ManufacturerBonus
		}
		if query.DeviceClass != "" && entry.Spec.DeviceClass == query.DeviceClass {
			bonus += e.config.DeviceClassBonus
		}
		results[i] = Recommendation{Entry: entry, Score: sim + bonus, Similarity: sim, Bonus: bonus}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	if e.cache != nil {
		e.cache.Add(key, append([]Recommendation(nil), results...))
	}

	e.logger.Debug().
		Str("manufacturer", query.Manufacturer).
		Str("device_class", query.DeviceClass).
		Int("limit", limit).
		Int("returned", len(results)).
		Msg("ranked catalog")
	return results, nil
}

// Recommend ranks and then filters. Filtering happens after truncation, so
// fewer than limit results may be returned.
//
//nolint:gocritic // value parameters for immutability
func (e *Engine) Recommend(ctx context.Context, query catalog.Specification, limit int, criteria Criteria) ([]Recommendation, error) {
	ranked, err := e.Rank(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if criteria.IsEmpty() {
		return ranked, nil
	}
	return Filter(ranked, criteria), nil
}

// cosine returns the cosine similarity of a and b, or 0 when either has
// zero length.
func cosine(a, b []float64, bNorm float64) float64 {
	aNorm := floats.Norm(a, 2)
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	return floats.Dot(a, b) / (aNorm * bNorm)
}

//nolint:gocritic // query passed by value for immutability
func cacheKey(query catalog.Specification, limit int) string {
	return fmt.Sprintf("%g|%d|%g|%s|%s|%d",
		query.ScreenSize, query.RAM, query.Weight, query.Manufacturer, query.DeviceClass, limit)
}
