// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"fmt"
	"time"

	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/features"
)

// Evaluation is the outcome of one family during selection.
type Evaluation struct {
	Family Family `json:"family"`
	Params Params `json:"params"`
	Scores

	// CVMSE is the mean validation MSE of Params across folds, 0 when no
	// search ran.
	CVMSE      float64 `json:"cv_mse,omitempty"`
	TrainRows  int     `json:"train_rows"`
	TestRows   int     `json:"test_rows"`
	DurationMS int64   `json:"duration_ms"`
}

// Artifact is a fitted model bound to the encoder state it was trained on.
// It is immutable once built; retraining produces a new Artifact.
type Artifact struct {
	Family    Family                 `json:"family"`
	Params    Params                 `json:"params"`
	Encoder   *features.EncoderState `json:"encoder"`
	Model     ModelState             `json:"model"`
	Metrics   *Evaluation            `json:"metrics,omitempty"`
	TrainedAt time.Time              `json:"trained_at"`
	TrainRows int                    `json:"train_rows"`

	// Name and Version are assigned by the Repository.
	Name    string `json:"-"`
	Version int    `json:"-"`
}

// Estimate is a raw model output for one specification.
type Estimate struct {
	Value float64

	// Members holds per-member predictions for ensembles with independent
	// members, nil otherwise.
	Members []float64

	Fallbacks []features.Fallback
}

// Validate checks that the model and encoder fit together.
func (a *Artifact) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil artifact", ErrInvalidArtifact)
	}
	if a.Encoder == nil {
		return fmt.Errorf("%w: missing encoder state", ErrInvalidArtifact)
	}
	r := a.Model.Regressor()
	if r == nil {
		return fmt.Errorf("%w: missing model", ErrInvalidArtifact)
	}
	if r.Family() != a.Family {
		return fmt.Errorf("%w: model family %s, artifact family %s", ErrInvalidArtifact, r.Family(), a.Family)
	}
	width := a.Encoder.Width()
	if r.Width() != width {
		return fmt.Errorf("%w: model width %d, encoder width %d", ErrInvalidArtifact, r.Width(), width)
	}
	var trees []*Tree
	switch {
	case a.Model.Forest != nil:
		trees = a.Model.Forest.Trees
	case a.Model.Boosting != nil:
		trees = a.Model.Boosting.Trees
	}
	for i, t := range trees {
		if t == nil || !t.valid(width) {
			return fmt.Errorf("%w: tree %d is malformed", ErrInvalidArtifact, i)
		}
	}
	return nil
}

// Estimate encodes spec with the embedded encoder state and runs the model.
func (a *Artifact) Estimate(spec catalog.Specification) Estimate {
	enc := a.Encoder.Encode(spec)
	r := a.Model.Regressor()

	out := Estimate{
		Value:     r.Predict(enc.Vector),
		Fallbacks: enc.Fallbacks,
	}
	if mp, ok := r.(MemberPredictor); ok {
		out.Members = mp.PredictMembers(enc.Vector)
	}
	return out
}

// Strategy returns the encoding strategy the model was trained with.
func (a *Artifact) Strategy() features.Strategy {
	if a.Encoder == nil {
		return ""
	}
	return a.Encoder.Strategy
}
