// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"body too large", ErrBodyTooLarge, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge},
		{"empty body", ErrEmptyBody, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid specification", fmt.Errorf("%w: weight", catalog.ErrInvalidSpecification), http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown currency", pricing.ErrUnknownCurrency, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid rate", pricing.ErrInvalidRate, http.StatusBadRequest, ErrCodeBadRequest},
		{"artifact missing", fmt.Errorf("load best: %w", artifact.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"history missing", history.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"training in progress", pricing.ErrTrainingInProgress, http.StatusConflict, ErrCodeTrainingInProgress},
		{"training failed", fmt.Errorf("fit: %w", estimator.ErrTraining), http.StatusUnprocessableEntity, ErrCodeTrainingFailed},
		{"no model", pricing.ErrNoModel, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"no recommender", pricing.ErrNoRecommender, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, code := errorStatus(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("errorStatus(%v) = (%d, %s), want (%d, %s)", tt.err, status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestNeedsConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		currency string
		rate     float64
		want     bool
	}{
		{"", 0, false},
		{"EUR", 0, false},
		{" eur ", 0, false},
		{"EUR", 1.1, true},
		{"USD", 0, true},
		{"USD", 1.08, true},
	}
	for _, tt := range tests {
		if got := needsConversion(tt.currency, tt.rate, "EUR"); got != tt.want {
			t.Errorf("needsConversion(%q, %v) = %v, want %v", tt.currency, tt.rate, got, tt.want)
		}
	}
}
