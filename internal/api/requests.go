// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/recommend"
)

// EncodeRequest is the body of POST /encode.
type EncodeRequest struct {
	Specification catalog.Specification `json:"specification"`
}

// PredictRequest is the body of POST /predict.
//
// Fields:
//   - Currency: optional target currency; the base currency when empty
//   - Rate: base-to-target conversion rate, required for other currencies
//   - SkipHistory: do not record the prediction
type PredictRequest struct {
	Specification catalog.Specification `json:"specification"`
	Currency      string                `json:"currency,omitempty" validate:"omitempty,currency"`
	Rate          float64               `json:"rate,omitempty" validate:"finite,gte=0"`
	SkipHistory   bool                  `json:"skip_history,omitempty"`
}

// RecommendRequest is the body of POST /recommend. Limit 0 selects the
// configured default; values above the maximum are clamped.
type RecommendRequest struct {
	Specification catalog.Specification `json:"specification"`
	Limit         int                   `json:"limit,omitempty" validate:"min=0"`
	Filter        recommend.Criteria    `json:"filter"`
}

// CompareRequest is the body of POST /compare.
type CompareRequest struct {
	Laptops []catalog.Specification `json:"laptops" validate:"required,min=2,max=10,dive"`
}

// TrainRequest carries the query parameters of POST /models/train.
type TrainRequest struct {
	Family string `json:"family" validate:"omitempty,family"`
}

// FacetRequest carries the path parameter of GET /catalog/facets/{column}.
type FacetRequest struct {
	Column string `json:"column" validate:"required,facet"`
}

// HistoryRequest carries the query parameters of GET /history.
type HistoryRequest struct {
	Limit int `json:"limit" validate:"min=0,max=1000"`
}
