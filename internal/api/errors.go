// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/features"
	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/logging"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// Request decoding errors
var (
	// ErrEmptyBody indicates a POST without a JSON body
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge indicates the body exceeded the configured limit
	ErrBodyTooLarge = errors.New("request body too large")
)

// errorStatus maps an error to an HTTP status and API error code. The first
// matching rule wins.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge
	case errors.Is(err, ErrEmptyBody),
		errors.Is(err, catalog.ErrInvalidSpecification),
		errors.Is(err, pricing.ErrUnknownCurrency),
		errors.Is(err, pricing.ErrInvalidRate),
		errors.Is(err, features.ErrUnknownStrategy):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, artifact.ErrNotFound), errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, pricing.ErrTrainingInProgress):
		return http.StatusConflict, ErrCodeTrainingInProgress
	case errors.Is(err, estimator.ErrTraining), errors.Is(err, catalog.ErrDataFormat):
		return http.StatusUnprocessableEntity, ErrCodeTrainingFailed
	case errors.Is(err, pricing.ErrNoModel), errors.Is(err, pricing.ErrNoRecommender):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// respondError writes err using errorStatus. Server-side failures are logged
// and their message replaced with a generic one.
func respondError(rw *ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", status).
			Msg("API request failed")
		message = http.StatusText(status)
	}
	rw.Error(status, code, message)
}
