// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/features"
)

// Interval is a prediction band. Lower <= Predicted <= Upper is not
// guaranteed.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Result is a currency-tagged price estimate.
type Result struct {
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	Symbol   string    `json:"symbol"`
	Interval *Interval `json:"interval,omitempty"`

	Category Category `json:"category"`

	Family       estimator.Family    `json:"family"`
	ModelVersion int                 `json:"model_version"`
	Strategy     features.Strategy   `json:"strategy"`
	Fallbacks    []features.Fallback `json:"fallbacks,omitempty"`
	PredictedAt  time.Time           `json:"predicted_at"`
}

// HasInterval reports whether an interval was produced.
func (r *Result) HasInterval() bool {
	return r.Interval != nil
}

// Convert returns a copy of r expressed in currency, multiplying the price
// and interval bounds by rate. Category is not recomputed.
func (r *Result) Convert(currency string, rate float64) (*Result, error) {
	c, ok := LookupCurrency(currency)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	out := *r
	out.Price = r.Price * rate
	out.Currency = c.Code
	out.Symbol = c.Symbol
	if r.Interval != nil {
		out.Interval = &Interval{
			Lower: r.Interval.Lower * rate,
			Upper: r.Interval.Upper * rate,
			Level: r.Interval.Level,
		}
	}
	if r.Fallbacks != nil {
		out.Fallbacks = append([]features.Fallback(nil), r.Fallbacks...)
	}
	return &out, nil
}

// EncodeResult is the encoded form of one specification.
type EncodeResult struct {
	Vector       []float64           `json:"vector"`
	FeatureNames []string            `json:"feature_names"`
	Fallbacks    []features.Fallback `json:"fallbacks,omitempty"`
	Strategy     features.Strategy   `json:"strategy"`

	// Source is "model" when the active artifact's encoder state was used and
	// "catalog" when a state fit on the training split was used.
	Source string `json:"source"`
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	// IsTraining indicates whether training is currently in progress.
	IsTraining bool `json:"is_training"`

	// Kind is "select" or the family name of a single-family run.
	Kind string `json:"kind,omitempty"`

	// LastTrainedAt is when training last completed successfully.
	LastTrainedAt time.Time `json:"last_trained_at"`

	// LastTrainingDurationMS is how long the last run took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError is the error from the last run, if any.
	LastError string `json:"last_error,omitempty"`

	// Runs counts finished runs, successful or not.
	Runs int `json:"runs"`
}

// ModelInfo describes the artifact serving predictions.
type ModelInfo struct {
	Name      string                `json:"name"`
	Version   int                   `json:"version"`
	Family    estimator.Family      `json:"family"`
	Params    estimator.Params      `json:"params"`
	Strategy  features.Strategy     `json:"strategy"`
	Width     int                   `json:"width"`
	TrainedAt time.Time             `json:"trained_at"`
	TrainRows int                   `json:"train_rows"`
	Metrics   *estimator.Evaluation `json:"metrics,omitempty"`
}

// DescribeModel summarizes an artifact for API responses.
func DescribeModel(a *estimator.Artifact) *ModelInfo {
	return &ModelInfo{
		Name:      a.Name,
		Version:   a.Version,
		Family:    a.Family,
		Params:    a.Params,
		Strategy:  a.Strategy(),
		Width:     a.Encoder.Width(),
		TrainedAt: a.TrainedAt,
		TrainRows: a.TrainRows,
		Metrics:   a.Metrics,
	}
}
