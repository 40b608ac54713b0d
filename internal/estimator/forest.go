// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"math/rand"
)

// RandomForest averages CART trees grown on bootstrap samples.
type RandomForest struct {
	Params   Params  `json:"params"`
	Trees    []*Tree `json:"trees"`
	Features int     `json:"features"`
}

// Family returns FamilyRandomForest.
func (m *RandomForest) Family() Family { return FamilyRandomForest }

// Width returns the feature width seen during Fit.
func (m *RandomForest) Width() int { return m.Features }

// Fit grows Params.NEstimators trees. Bootstrap samples are drawn from a
// generator seeded with Params.Seed, so equal inputs give equal forests.
func (m *RandomForest) Fit(ctx context.Context, X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return ErrEmptyTrainingSet
	}
	if len(y) != n {
		return ErrMissingTarget
	}
	p := m.Params.withDefaults(FamilyRandomForest)
	m.Params = p

	layout := newFeatureLayout(X)
	builder := newTreeBuilder(treeConfig{maxDepth: p.MaxDepth, minSamplesSplit: p.MinSamplesSplit}, X, y, layout)
	rng := rand.New(rand.NewSource(p.Seed)) //nolint:gosec // reproducible bootstrap, not security

	m.Features = layout.width
	m.Trees = make([]*Tree, 0, p.NEstimators)
	sample := make([]int, n)
	for t := 0; t < p.NEstimators; t++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		m.Trees = append(m.Trees, builder.build(sample))
	}
	return nil
}

// Predict returns the mean of the member predictions.
func (m *RandomForest) Predict(x []float64) float64 {
	if len(m.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range m.Trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(m.Trees))
}

// PredictMembers returns one prediction per tree, in tree order.
func (m *RandomForest) PredictMembers(x []float64) []float64 {
	out := make([]float64, len(m.Trees))
	for i, t := range m.Trees {
		out[i] = t.Predict(x)
	}
	return out
}
