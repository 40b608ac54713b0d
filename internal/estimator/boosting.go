// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"

	"gonum.org/v1/gonum/stat"
)

// GradientBoosting fits shallow trees to the residuals of the running
// prediction, starting from the target mean.
type GradientBoosting struct {
	Params   Params  `json:"params"`
	Init     float64 `json:"init"`
	Trees    []*Tree `json:"trees"`
	Features int     `json:"features"`
}

// Family returns FamilyGradientBoosting.
func (m *GradientBoosting) Family() Family { return FamilyGradientBoosting }

// Width returns the feature width seen during Fit.
func (m *GradientBoosting) Width() int { return m.Features }

// Fit runs Params.NEstimators boosting stages under squared loss.
func (m *GradientBoosting) Fit(ctx context.Context, X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return ErrEmptyTrainingSet
	}
	if len(y) != n {
		return ErrMissingTarget
	}
	p := m.Params.withDefaults(FamilyGradientBoosting)
	m.Params = p

	layout := newFeatureLayout(X)
	residual := make([]float64, n)
	builder := newTreeBuilder(treeConfig{maxDepth: p.MaxDepth, minSamplesSplit: p.MinSamplesSplit}, X, residual, layout)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	m.Features = layout.width
	m.Init = stat.Mean(y, nil)
	current := make([]float64, n)
	for i := range current {
		current[i] = m.Init
	}

	m.Trees = make([]*Tree, 0, p.NEstimators)
	for stage := 0; stage < p.NEstimators; stage++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range residual {
			residual[i] = y[i] - current[i]
		}
		tree := builder.build(all)
		for i, row := range X {
			current[i] += p.LearningRate * tree.Predict(row)
		}
		m.Trees = append(m.Trees, tree)
	}
	return nil
}

// Predict returns Init plus the shrunken sum of stage predictions.
func (m *GradientBoosting) Predict(x []float64) float64 {
	out := m.Init
	for _, t := range m.Trees {
		out += m.Params.LearningRate * t.Predict(x)
	}
	return out
}
