// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Family names a regression algorithm.
type Family string

// Supported families.
const (
	FamilyLinear           Family = "linear"
	FamilyRandomForest     Family = "random_forest"
	FamilyGradientBoosting Family = "gradient_boosting"
)

// DefaultFamilies is the candidate order used by SelectBest when the caller
// does not name one.
var DefaultFamilies = []Family{FamilyLinear, FamilyRandomForest, FamilyGradientBoosting}

// ErrUnknownFamily is returned for a family name with no implementation.
var ErrUnknownFamily = errors.New("unknown model family")

// ParseFamily validates a family name.
func ParseFamily(name string) (Family, error) {
	f := Family(strings.TrimSpace(name))
	switch f {
	case FamilyLinear, FamilyRandomForest, FamilyGradientBoosting:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// IsEnsemble reports whether the family averages independent members and
// can therefore produce a prediction interval.
func (f Family) IsEnsemble() bool {
	return f == FamilyRandomForest
}

// Params are the hyperparameters of one candidate configuration. Zero values
// select the family default.
type Params struct {
	NEstimators     int     `json:"n_estimators,omitempty" koanf:"n_estimators"`
	MaxDepth        int     `json:"max_depth,omitempty" koanf:"max_depth"` // 0: unlimited for forests, 3 for boosting
	LearningRate    float64 `json:"learning_rate,omitempty" koanf:"learning_rate"`
	MinSamplesSplit int     `json:"min_samples_split,omitempty" koanf:"min_samples_split"`
	Seed            int64   `json:"seed,omitempty" koanf:"seed"`
}

// withDefaults fills zero fields with the defaults of family.
//
//nolint:gocritic // Params is small and copied on purpose
func (p Params) withDefaults(family Family) Params {
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	switch family {
	case FamilyRandomForest:
		if p.NEstimators <= 0 {
			p.NEstimators = 100
		}
	case FamilyGradientBoosting:
		if p.NEstimators <= 0 {
			p.NEstimators = 100
		}
		if p.LearningRate <= 0 {
			p.LearningRate = 0.1
		}
		if p.MaxDepth <= 0 {
			p.MaxDepth = 3
		}
	}
	return p
}

// String renders the configuration for logs.
//
//nolint:gocritic // Params is small and copied on purpose
func (p Params) String() string {
	var parts []string
	if p.NEstimators > 0 {
		parts = append(parts, "n_estimators="+strconv.Itoa(p.NEstimators))
	}
	if p.MaxDepth > 0 {
		parts = append(parts, "max_depth="+strconv.Itoa(p.MaxDepth))
	}
	if p.LearningRate > 0 {
		parts = append(parts, "learning_rate="+strconv.FormatFloat(p.LearningRate, 'g', -1, 64))
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, " ")
}

// Grid is an ordered list of candidate configurations.
type Grid []Params

// GridSpec describes a Cartesian product of hyperparameter values. An empty
// axis contributes the family default.
type GridSpec struct {
	NEstimators  []int     `json:"n_estimators" koanf:"n_estimators"`
	MaxDepth     []int     `json:"max_depth" koanf:"max_depth"`
	LearningRate []float64 `json:"learning_rate" koanf:"learning_rate"`
}

// Expand returns the product in n_estimators, max_depth, learning_rate
// nesting order, every entry carrying seed.
//
//nolint:gocritic // GridSpec is read-only here
func (g GridSpec) Expand(seed int64) Grid {
	nEst := g.NEstimators
	if len(nEst) == 0 {
		nEst = []int{0}
	}
	depth := g.MaxDepth
	if len(depth) == 0 {
		depth = []int{0}
	}
	rate := g.LearningRate
	if len(rate) == 0 {
		rate = []float64{0}
	}

	grid := make(Grid, 0, len(nEst)*len(depth)*len(rate))
	for _, n := range nEst {
		for _, d := range depth {
			for _, r := range rate {
				grid = append(grid, Params{NEstimators: n, MaxDepth: d, LearningRate: r, Seed: seed})
			}
		}
	}
	return grid
}

// DefaultGridSpecs are the search spaces used when configuration does not
// override them. A max_depth of 0 means unlimited.
func DefaultGridSpecs() map[Family]GridSpec {
	return map[Family]GridSpec{
		FamilyLinear: {},
		FamilyRandomForest: {
			NEstimators: []int{50, 100, 200},
			MaxDepth:    []int{0, 10, 20},
		},
		FamilyGradientBoosting: {
			NEstimators:  []int{50, 100, 200},
			LearningRate: []float64{0.01, 0.1, 0.2},
		},
	}
}
