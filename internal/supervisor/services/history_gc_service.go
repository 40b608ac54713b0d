// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims space in an on-disk store.
// Satisfied by *history.BadgerStore.
type GarbageCollector interface {
	RunGC(ratio float64) error
}

// DefaultGCRatio is the discard fraction a value log file needs before it
// is rewritten.
const DefaultGCRatio = 0.5

// HistoryGCService runs value log garbage collection on the badger history
// store at a fixed interval.
type HistoryGCService struct {
	store    GarbageCollector
	interval time.Duration
	ratio    float64
	logger   zerolog.Logger
	name     string
}

// NewHistoryGCService creates the service. A non-positive interval means
// 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHistoryGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *HistoryGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &HistoryGCService{
		store:    store,
		interval: interval,
		ratio:    DefaultGCRatio,
		logger:   logger.With().Str("service", "history-gc").Logger(),
		name:     "history-gc",
	}
}

// Serve implements suture.Service. GC errors are logged; the next tick
// tries again.
func (s *HistoryGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(s.ratio); err != nil {
				s.logger.Warn().Err(err).Msg("history GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("history GC complete")
		}
	}
}

// String returns the service name for logging.
func (s *HistoryGCService) String() string {
	return s.name
}
