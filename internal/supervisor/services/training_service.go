// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// ModelTrainer is the training surface of *pricing.Engine.
type ModelTrainer interface {
	// TrainOrSelect loads the stored best model or runs a selection.
	TrainOrSelect(ctx context.Context) (*estimator.Artifact, error)

	// Select runs a full model selection and activates the winner.
	Select(ctx context.Context) (*estimator.Selection, error)
}

// TrainingServiceConfig holds the training schedule.
type TrainingServiceConfig struct {
	// OnStartup makes a model active when the service starts.
	OnStartup bool

	// RetrainInterval reruns selection periodically. 0 disables it.
	RetrainInterval time.Duration

	// Timeout bounds one training run.
	// Default: 30m
	Timeout time.Duration
}

// TrainingService keeps a model active and optionally reselects it on a
// schedule. Training failures are logged and never crash the service; the
// API layer keeps serving the previous model.
type TrainingService struct {
	trainer ModelTrainer
	config  TrainingServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainingService creates a training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainingService(trainer ModelTrainer, cfg TrainingServiceConfig, logger zerolog.Logger) *TrainingService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &TrainingService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "training").Logger(),
		name:    "training-service",
	}
}

// Serve implements suture.Service.
func (s *TrainingService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("retrain_interval", s.config.RetrainInterval).
		Msg("training service starting")

	if s.config.OnStartup {
		s.run(ctx, "startup", func(ctx context.Context) error {
			_, err := s.trainer.TrainOrSelect(ctx)
			return err
		})
	}

	if s.config.RetrainInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RetrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.run(ctx, "scheduled", func(ctx context.Context) error {
				_, err := s.trainer.Select(ctx)
				return err
			})
		}
	}
}

func (s *TrainingService) run(ctx context.Context, trigger string, fn func(context.Context) error) {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	err := fn(trainCtx)
	switch {
	case err == nil:
		s.logger.Info().
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("model training complete")
	case errors.Is(err, pricing.ErrTrainingInProgress):
		s.logger.Debug().Str("trigger", trigger).Msg("training already running, skipped")
	case ctx.Err() != nil:
		// Shutting down.
	default:
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("model training failed")
	}
}

// String returns the service name for logging.
func (s *TrainingService) String() string {
	return s.name
}
