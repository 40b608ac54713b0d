// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"fmt"
	"math"

	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/features"
)

// Dataset is an encoded feature matrix with its target, bound to the encoder
// state that produced it.
type Dataset struct {
	X       [][]float64
	Y       []float64
	Encoder *features.EncoderState

	// Fallbacks counts unseen categorical values met while encoding.
	Fallbacks int
}

// NewDataset encodes cat with state. The target is the catalog price.
func NewDataset(state *features.EncoderState, cat *catalog.Catalog) *Dataset {
	rows, fallbacks := state.TransformAll(cat)
	return &Dataset{
		X:         rows,
		Y:         cat.Prices(),
		Encoder:   state,
		Fallbacks: fallbacks,
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.X)
}

// subset shares row storage with d.
func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{
		X:       make([][]float64, len(idx)),
		Y:       make([]float64, len(idx)),
		Encoder: d.Encoder,
	}
	for k, i := range idx {
		out.X[k] = d.X[i]
		out.Y[k] = d.Y[i]
	}
	return out
}

// validate checks the preconditions of every fit.
func (d *Dataset) validate() error {
	if d.Len() == 0 {
		return ErrEmptyTrainingSet
	}
	if len(d.Y) != len(d.X) {
		return fmt.Errorf("%w: %d targets for %d rows", ErrMissingTarget, len(d.Y), len(d.X))
	}
	width := len(d.X[0])
	if d.Encoder != nil && d.Encoder.Width() != width {
		return fmt.Errorf("feature width %d does not match encoder width %d", width, d.Encoder.Width())
	}
	for i, row := range d.X {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
	}
	for i, y := range d.Y {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("%w: target %d is not finite", ErrMissingTarget, i)
		}
	}
	return nil
}
