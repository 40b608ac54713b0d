// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"errors"
)

var (
	// ErrTraining matches every *TrainingError with errors.Is.
	ErrTraining = errors.New("training error")

	// ErrEmptyTrainingSet is the cause when there are no training rows.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrMissingTarget is the cause when the target column is absent or its
	// length does not match the feature rows.
	ErrMissingTarget = errors.New("target column missing")

	// ErrNoCandidates is the cause when SelectBest gets no families.
	ErrNoCandidates = errors.New("no candidate families")

	// ErrInvalidArtifact is returned when an artifact's model and encoder
	// do not fit together.
	ErrInvalidArtifact = errors.New("invalid artifact")
)

// TrainingError reports a failed training attempt. It is fatal to that
// attempt only.
type TrainingError struct {
	Family Family
	Err    error
}

func (e *TrainingError) Error() string {
	if e.Family == "" {
		return "training: " + e.Err.Error()
	}
	return "training " + string(e.Family) + ": " + e.Err.Error()
}

// Unwrap returns the cause.
func (e *TrainingError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTraining) true.
func (e *TrainingError) Is(target error) bool { return target == ErrTraining }
