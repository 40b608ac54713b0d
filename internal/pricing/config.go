// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package pricing

import (
	"fmt"

	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/features"
)

// Config contains the training and prediction parameters of an Engine.
type Config struct {
	// Strategy is the categorical encoding used for new training runs.
	// Default: onehot/v1.
	Strategy features.Strategy

	// TestFraction is the share of the catalog held out for evaluation.
	// Default: 0.2.
	TestFraction float64

	// Seed drives the split, cross-validation folds and ensembles.
	// Default: 42.
	Seed int64

	// Families are the candidates of SelectBest, in tie-break order.
	// Default: linear, random_forest, gradient_boosting.
	Families []estimator.Family

	// Folds is k for cross-validation.
	// Default: 5.
	Folds int

	// Workers bounds concurrent fits. 0 means one per CPU.
	Workers int

	// Grids overrides the search space per family.
	Grids map[estimator.Family]estimator.GridSpec

	// IntervalLevel is the coverage of the prediction interval.
	// Default: 0.95.
	IntervalLevel float64

	// BaseCurrency is the currency of catalog prices.
	// Default: EUR.
	BaseCurrency string
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Strategy:      features.StrategyOneHot,
		TestFraction:  0.2,
		Seed:          42,
		Families:      append([]estimator.Family(nil), estimator.DefaultFamilies...),
		Folds:         5,
		IntervalLevel: 0.95,
		BaseCurrency:  "EUR",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	strategy, err := features.ParseStrategy(string(c.Strategy))
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	c.Strategy = strategy
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0, 1), got %v", c.TestFraction)
	}
	if len(c.Families) == 0 {
		return fmt.Errorf("families must not be empty")
	}
	for _, f := range c.Families {
		if _, err := estimator.ParseFamily(string(f)); err != nil {
			return fmt.Errorf("families: %w", err)
		}
	}
	if c.Folds < 2 {
		return fmt.Errorf("folds must be >= 2, got %d", c.Folds)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.IntervalLevel <= 0 || c.IntervalLevel >= 1 {
		return fmt.Errorf("interval_level must be in (0, 1), got %v", c.IntervalLevel)
	}
	if _, ok := LookupCurrency(c.BaseCurrency); !ok {
		return fmt.Errorf("base_currency %q is not supported", c.BaseCurrency)
	}
	return nil
}

func (c *Config) searchOptions() estimator.SearchOptions {
	return estimator.SearchOptions{
		Folds:   c.Folds,
		Seed:    c.Seed,
		Workers: c.Workers,
		Grids:   c.Grids,
	}
}
