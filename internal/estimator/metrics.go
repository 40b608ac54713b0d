// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scores are regression accuracy measures on one dataset.
type Scores struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Score evaluates predictions against actual values. With constant actual
// values R² is 1 for a perfect fit and 0 otherwise.
func Score(predicted, actual []float64) Scores {
	if len(actual) == 0 {
		return Scores{}
	}
	mse := meanSquaredError(predicted, actual)

	var r2 float64
	if stat.Variance(actual, nil) == 0 || len(actual) < 2 {
		if mse == 0 {
			r2 = 1
		}
	} else {
		r2 = stat.RSquaredFrom(predicted, actual, nil)
	}

	return Scores{MSE: mse, RMSE: math.Sqrt(mse), R2: r2}
}

func meanSquaredError(predicted, actual []float64) float64 {
	sum := 0.0
	for i, y := range actual {
		d := predicted[i] - y
		sum += d * d
	}
	return sum / float64(len(actual))
}

func predictAll(r Regressor, X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = r.Predict(row)
	}
	return out
}
