// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapiprice/internal/metrics"
)

// Train fits one family with params on ds. It has no side effects beyond the
// returned artifact.
//
//nolint:gocritic // Params is small and copied on purpose
func Train(ctx context.Context, family Family, params Params, ds *Dataset) (*Artifact, error) {
	if err := ds.validate(); err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}
	if ds.Encoder == nil {
		return nil, &TrainingError{Family: family, Err: fmt.Errorf("dataset has no encoder state")}
	}

	r, err := newRegressor(family, params)
	if err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}
	if err := r.Fit(ctx, ds.X, ds.Y); err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}

	return &Artifact{
		Family:    family,
		Params:    params.withDefaults(family),
		Encoder:   ds.Encoder,
		Model:     stateOf(r),
		TrainedAt: time.Now().UTC(),
		TrainRows: ds.Len(),
	}, nil
}

// Evaluate scores a on ds.
func Evaluate(a *Artifact, ds *Dataset) Scores {
	return Score(predictAll(a.Model.Regressor(), ds.X), ds.Y)
}

// Selection is the outcome of SelectBest.
type Selection struct {
	Best       *Artifact
	Metrics    Evaluation
	Candidates []*Artifact
	Evaluated  []Evaluation
}

// Selector runs model selection and optionally persists the results.
type Selector struct {
	opts   SearchOptions
	repo   *Repository
	logger zerolog.Logger
}

// NewSelector creates a selector. repo may be nil, in which case nothing is
// persisted.
//
//nolint:gocritic // options are copied once at construction
func NewSelector(opts SearchOptions, repo *Repository, logger zerolog.Logger) *Selector {
	if opts.Folds < 2 {
		opts.Folds = DefaultSearchOptions().Folds
	}
	return &Selector{
		opts:   opts,
		repo:   repo,
		logger: logger.With().Str("component", "selector").Logger(),
	}
}

// Options returns the search options.
func (s *Selector) Options() SearchOptions { return s.opts }

// Tune finds the best params for family on train. Grids with a single entry
// skip cross-validation.
func (s *Selector) Tune(ctx context.Context, family Family, train *Dataset) (Params, float64, error) {
	grid := s.opts.grid(family)
	if len(grid) == 1 {
		return grid[0], 0, nil
	}
	res, err := GridSearch(ctx, family, grid, train, s.opts)
	if err != nil {
		return Params{}, 0, err
	}
	s.logger.Debug().
		Str("family", string(family)).
		Str("params", res.Params.String()).
		Float64("cv_mse", res.CVMSE).
		Int("configurations", len(grid)).
		Msg("Grid search finished")
	return res.Params, res.CVMSE, nil
}

// SelectBest tunes, fits and evaluates every family in order and returns the
// one with the highest test R². A later family must score strictly higher to
// replace an earlier one. When a repository is configured every fitted family
// is saved under its own name and the winner under BestName.
func (s *Selector) SelectBest(ctx context.Context, train, test *Dataset, families []Family) (*Selection, error) {
	if len(families) == 0 {
		return nil, &TrainingError{Err: ErrNoCandidates}
	}
	if err := train.validate(); err != nil {
		return nil, &TrainingError{Err: err}
	}
	if test.Len() == 0 {
		return nil, &TrainingError{Err: fmt.Errorf("test set is empty")}
	}

	sel := &Selection{}
	bestIdx := -1
	for _, family := range families {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()

		params, cvMSE, err := s.Tune(ctx, family, train)
		if err != nil {
			return nil, err
		}
		artifact, err := Train(ctx, family, params, train)
		if err != nil {
			return nil, err
		}

		eval := Evaluation{
			Family:     family,
			Params:     artifact.Params,
			Scores:     Evaluate(artifact, test),
			CVMSE:      cvMSE,
			TrainRows:  train.Len(),
			TestRows:   test.Len(),
			DurationMS: time.Since(start).Milliseconds(),
		}
		artifact.Metrics = &eval
		metrics.RecordModelScore(string(family), eval.R2, eval.RMSE)
		metrics.CandidateFits.WithLabelValues(string(family)).Inc()

		s.logger.Info().
			Str("family", string(family)).
			Str("params", eval.Params.String()).
			Float64("r2", eval.R2).
			Float64("rmse", eval.RMSE).
			Int64("duration_ms", eval.DurationMS).
			Msg("Candidate evaluated")

		sel.Candidates = append(sel.Candidates, artifact)
		sel.Evaluated = append(sel.Evaluated, eval)
		if bestIdx < 0 || eval.R2 > sel.Evaluated[bestIdx].R2 {
			bestIdx = len(sel.Evaluated) - 1
		}
	}

	sel.Best = sel.Candidates[bestIdx]
	sel.Metrics = sel.Evaluated[bestIdx]

	if s.repo != nil {
		for _, a := range sel.Candidates {
			if err := s.repo.Save(ctx, string(a.Family), a); err != nil {
				return nil, err
			}
		}
		if err := s.repo.Save(ctx, BestName, sel.Best); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("family", string(sel.Metrics.Family)).
		Float64("r2", sel.Metrics.R2).
		Int("candidates", len(families)).
		Msg("Best model selected")
	return sel, nil
}
