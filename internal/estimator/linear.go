// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// rcond is the relative singular value cutoff of the least squares solve.
const rcond = 1e-10

// LinearRegression is ordinary least squares with an intercept.
type LinearRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// Family returns FamilyLinear.
func (m *LinearRegression) Family() Family { return FamilyLinear }

// Width returns the number of coefficients.
func (m *LinearRegression) Width() int { return len(m.Coef) }

// Fit solves the centered least squares problem with a thin SVD and keeps the
// minimum-norm solution. Singular values below rcond relative to the largest
// are treated as zero, which makes rank-deficient one-hot blocks solvable.
func (m *LinearRegression) Fit(ctx context.Context, X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return ErrEmptyTrainingSet
	}
	if len(y) != n {
		return ErrMissingTarget
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p := len(X[0])

	xMean := make([]float64, p)
	for _, row := range X {
		floats.Add(xMean, row)
	}
	floats.Scale(1/float64(n), xMean)
	yMean := stat.Mean(y, nil)

	m.Coef = make([]float64, p)
	m.Intercept = yMean
	if p == 0 {
		return nil
	}

	a := mat.NewDense(n, p, nil)
	for i, row := range X {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
	}
	b := mat.NewVecDense(n, nil)
	for i, v := range y {
		b.SetVec(i, v-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return errors.New("linear: SVD factorization failed")
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil
	}

	coef := mat.NewVecDense(p, nil)
	svd.SolveVecTo(coef, b, rank)
	for j := range m.Coef {
		c := coef.AtVec(j)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.New("linear: non-finite coefficient")
		}
		m.Coef[j] = c
	}
	m.Intercept = yMean - floats.Dot(m.Coef, xMean)
	return nil
}

// Predict returns intercept + coef·x.
func (m *LinearRegression) Predict(x []float64) float64 {
	return m.Intercept + floats.Dot(m.Coef, x)
}
