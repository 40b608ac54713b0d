// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/lapiprice/internal/features"
)

// SearchOptions configure cross-validated grid search.
type SearchOptions struct {
	// Folds is k for k-fold cross-validation.
	Folds int

	// Seed drives fold assignment and ensemble randomness.
	Seed int64

	// Workers bounds concurrent fits. 0 means runtime.NumCPU().
	Workers int

	// Grids overrides the search space per family.
	Grids map[Family]GridSpec
}

// DefaultSearchOptions returns 5 folds with seed 42.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Folds: 5, Seed: 42}
}

func (o SearchOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// grid returns the candidate configurations for family.
func (o SearchOptions) grid(family Family) Grid {
	spec, ok := o.Grids[family]
	if !ok {
		spec = DefaultGridSpecs()[family]
	}
	return spec.Expand(o.Seed)
}

// SearchResult is the best configuration found by GridSearch.
type SearchResult struct {
	Params Params
	CVMSE  float64

	// Scores holds the mean validation MSE per grid entry, in grid order.
	Scores []float64
}

// GridSearch scores every configuration in grid by mean validation MSE over
// k folds of ds and returns the lowest. Ties keep the earlier configuration.
// All (configuration, fold) fits run concurrently up to opts.Workers.
func GridSearch(ctx context.Context, family Family, grid Grid, ds *Dataset, opts SearchOptions) (*SearchResult, error) {
	if len(grid) == 0 {
		return nil, &TrainingError{Family: family, Err: fmt.Errorf("empty parameter grid")}
	}
	if err := ds.validate(); err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}

	folds, err := features.KFold(ds.Len(), opts.Folds, opts.Seed)
	if err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}

	type job struct {
		train, valid *Dataset
	}
	jobs := make([]job, len(folds))
	for f, validIdx := range folds {
		var trainIdx []int
		for g, other := range folds {
			if g != f {
				trainIdx = append(trainIdx, other...)
			}
		}
		jobs[f] = job{train: ds.subset(trainIdx), valid: ds.subset(validIdx)}
	}

	mse := make([][]float64, len(grid))
	for i := range mse {
		mse[i] = make([]float64, len(folds))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, params := range grid {
		for f, j := range jobs {
			g.Go(func() error {
				r, err := newRegressor(family, params)
				if err != nil {
					return err
				}
				if err := r.Fit(gctx, j.train.X, j.train.Y); err != nil {
					return fmt.Errorf("fold %d %s: %w", f, params, err)
				}
				mse[i][f] = meanSquaredError(predictAll(r, j.valid.X), j.valid.Y)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, &TrainingError{Family: family, Err: err}
	}

	result := &SearchResult{CVMSE: math.Inf(1), Scores: make([]float64, len(grid))}
	for i, perFold := range mse {
		sum := 0.0
		for _, v := range perFold {
			sum += v
		}
		mean := sum / float64(len(perFold))
		result.Scores[i] = mean
		if mean < result.CVMSE {
			result.CVMSE = mean
			result.Params = grid[i]
		}
	}
	if math.IsInf(result.CVMSE, 1) {
		return nil, &TrainingError{Family: family, Err: fmt.Errorf("no configuration produced a finite score")}
	}
	return result, nil
}
