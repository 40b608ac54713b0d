// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is initialized once with the application's
// custom tags. Failures are translated into human-readable messages and
// converted to the API's VALIDATION_ERROR format. Field names in messages are
// the JSON names of the fields.
//
// # Custom Tags
//
//   - currency: a supported ISO 4217 code (case-insensitive)
//   - finite: a float that is neither NaN nor infinite
//   - family: linear, random_forest or gradient_boosting
//   - facet: a categorical catalog column name
//
// # Usage
//
//	type PredictRequest struct {
//	    Specification catalog.Specification `json:"specification"`
//	    Currency      string                `json:"currency" validate:"omitempty,currency"`
//	    Rate          float64               `json:"rate" validate:"finite,gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
