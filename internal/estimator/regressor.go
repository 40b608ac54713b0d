// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"fmt"
)

// Regressor is a fitted or fittable price model over encoded feature rows.
type Regressor interface {
	// Family returns the algorithm family.
	Family() Family

	// Fit trains on rows X with targets y. Implementations check ctx between
	// independent units of work.
	Fit(ctx context.Context, X [][]float64, y []float64) error

	// Predict returns the point estimate for one row.
	Predict(x []float64) float64

	// Width is the feature width the model was fitted on, 0 before Fit.
	Width() int
}

// MemberPredictor is implemented by ensembles whose members are independent
// estimates of the same target.
type MemberPredictor interface {
	PredictMembers(x []float64) []float64
}

// Compile-time interface checks.
var (
	_ Regressor       = (*LinearRegression)(nil)
	_ Regressor       = (*RandomForest)(nil)
	_ Regressor       = (*GradientBoosting)(nil)
	_ MemberPredictor = (*RandomForest)(nil)
)

// newRegressor returns an unfitted model of family configured by params.
//
//nolint:gocritic // Params is small and copied on purpose
func newRegressor(family Family, params Params) (Regressor, error) {
	params = params.withDefaults(family)
	switch family {
	case FamilyLinear:
		return &LinearRegression{}, nil
	case FamilyRandomForest:
		return &RandomForest{Params: params}, nil
	case FamilyGradientBoosting:
		return &GradientBoosting{Params: params}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
}

// ModelState is the serializable form of a fitted Regressor. Exactly one
// field is set.
type ModelState struct {
	Linear   *LinearRegression `json:"linear,omitempty"`
	Forest   *RandomForest     `json:"random_forest,omitempty"`
	Boosting *GradientBoosting `json:"gradient_boosting,omitempty"`
}

func stateOf(r Regressor) ModelState {
	switch m := r.(type) {
	case *LinearRegression:
		return ModelState{Linear: m}
	case *RandomForest:
		return ModelState{Forest: m}
	case *GradientBoosting:
		return ModelState{Boosting: m}
	default:
		return ModelState{}
	}
}

// Regressor returns the model held by the state, or nil if none is set.
func (s ModelState) Regressor() Regressor {
	switch {
	case s.Linear != nil:
		return s.Linear
	case s.Forest != nil:
		return s.Forest
	case s.Boosting != nil:
		return s.Boosting
	default:
		return nil
	}
}
