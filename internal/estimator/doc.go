// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package estimator trains, evaluates and selects price regression models.
//
// # Families
//
//   - linear: ordinary least squares, minimum-norm solution via SVD so that
//     collinear one-hot blocks do not make the fit fail
//   - random_forest: bagged CART regression trees; each tree is an
//     independent estimate, so predictions expose per-member values
//   - gradient_boosting: squared-loss boosting of shallow CART trees
//
// # Selection
//
// SelectBest runs a k-fold cross-validated grid search per family on the
// training set only, refits the best configuration on the whole training
// set, scores it on the held-out test set and keeps the family with the
// highest R². Comparison is strict, so the first family in the candidate list
// wins a tie. Independent fits run concurrently through an errgroup bounded by
// SearchOptions.Workers; results are collected by index, so the outcome does
// not depend on scheduling.
//
// # Artifacts
//
// An Artifact carries the fitted model together with the features.EncoderState
// it was trained against. Repository persists artifacts by name; "best" is
// the reserved alias for the currently selected model.
package estimator
