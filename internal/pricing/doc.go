// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package pricing serves laptop price estimates.

The Engine is the entry point used by the HTTP layer and the supervisor. It
exposes four operations:

  - Encode: a specification as the numeric vector the active model sees
  - TrainOrSelect: load the stored "best" model, or select one when none exists
  - Predict: a base-currency point estimate, optional interval and category
  - Recommend: comparable catalog laptops, delegated to the recommend package

# Model Lifecycle

The active artifact is held in an atomic pointer. Training runs build a new
artifact and swap it in; an artifact is never modified after it is published.
Only one training run executes at a time. A second caller receives
ErrTrainingInProgress instead of waiting.

	engine, err := pricing.NewEngine(cfg, cat, repo, logger)
	if err != nil {
	    return err
	}
	if _, err := engine.TrainOrSelect(ctx); err != nil {
	    return err
	}
	res, err := engine.Predict(ctx, spec)

# Intervals

Families whose members predict independently (random forests) produce a
central interval from the percentiles of the member predictions. Other
families return a nil Interval.

# Currencies

Prices are produced in the catalog currency (EUR). Result.Convert rescales a
result with a caller supplied rate; rates are not looked up here.
*/
package pricing
