// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package features

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrNotFinite is returned when a fitted column contains NaN or Inf.
var ErrNotFinite = errors.New("value is not finite")

// Scale is the fitted center/scale pair of one numeric column. Std is the
// population standard deviation.
type Scale struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// FitScale computes the population mean and standard deviation of values.
// An empty slice yields the identity-like {0, 0}, which Apply maps to 0.
func FitScale(values []float64) (Scale, error) {
	if len(values) == 0 {
		return Scale{}, nil
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Scale{}, ErrNotFinite
		}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return Scale{Mean: mean, Std: std}, nil
}

// Apply standardizes x. A zero (or degenerate) std yields 0 instead of a
// division by zero.
func (s Scale) Apply(x float64) float64 {
	if s.Std == 0 || math.IsNaN(s.Std) {
		return 0
	}
	return (x - s.Mean) / s.Std
}

// StandardScaler standardizes fixed-width rows column by column.
type StandardScaler struct {
	Scales []Scale `json:"scales"`
}

// FitStandardScaler fits one Scale per column of rows. Every row must have
// the same width.
func FitStandardScaler(rows [][]float64) (*StandardScaler, error) {
	if len(rows) == 0 {
		return &StandardScaler{}, nil
	}
	width := len(rows[0])
	scales := make([]Scale, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, r := range rows {
			if len(r) != width {
				return nil, errors.New("rows have different widths")
			}
			col[i] = r[j]
		}
		s, err := FitScale(col)
		if err != nil {
			return nil, err
		}
		scales[j] = s
	}
	return &StandardScaler{Scales: scales}, nil
}

// Transform returns a standardized copy of row. Columns beyond the fitted
// width are left as 0.
func (s *StandardScaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, x := range row {
		if j < len(s.Scales) {
			out[j] = s.Scales[j].Apply(x)
		}
	}
	return out
}
