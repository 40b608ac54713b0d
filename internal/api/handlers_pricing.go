// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/logging"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// PredictResponse is a price estimate plus the history entry recording it.
type PredictResponse struct {
	*pricing.Result
	HistoryID *uuid.UUID `json:"history_id,omitempty"`
}

// CurrenciesResponse lists the supported currency tags.
type CurrenciesResponse struct {
	Base       string             `json:"base"`
	Currencies []pricing.Currency `json:"currencies"`
}

// Encode handles POST /encode.
// Returns the feature vector of a specification together with any
// unseen-category fallbacks.
func (h *Handler) Encode(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req EncodeRequest
	if !bindJSON(rw, r, &req) || !validateRequest(rw, &req) {
		return
	}
	if err := req.Specification.Validate(); err != nil {
		respondError(rw, r, err)
		return
	}

	res, err := h.engine.Encode(req.Specification)
	if err != nil {
		respondError(rw, r, err)
		return
	}
	rw.Success(res)
}

// Predict handles POST /predict.
// Estimates the price in the base currency, converts it when a currency and
// rate are supplied, and records the result in the history.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PredictRequest
	if !bindJSON(rw, r, &req) || !validateRequest(rw, &req) {
		return
	}
	if err := req.Specification.Validate(); err != nil {
		respondError(rw, r, err)
		return
	}

	res, err := h.engine.Predict(r.Context(), req.Specification)
	if err != nil {
		respondError(rw, r, err)
		return
	}

	if needsConversion(req.Currency, req.Rate, res.Currency) {
		if res, err = res.Convert(req.Currency, req.Rate); err != nil {
			respondError(rw, r, err)
			return
		}
	}

	out := PredictResponse{Result: res}
	if !req.SkipHistory {
		entry := history.NewEntry(req.Specification, res)
		if err := h.history.Append(r.Context(), entry); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to record prediction history")
		} else {
			out.HistoryID = &entry.ID
		}
	}

	logging.Ctx(r.Context()).Debug().
		Str("family", string(res.Family)).
		Float64("price", res.Price).
		Str("currency", res.Currency).
		Msg("Prediction served")
	rw.Success(out)
}

// needsConversion reports whether the caller asked for a currency other than
// base, or supplied an explicit rate.
func needsConversion(currency string, rate float64, base string) bool {
	if currency == "" {
		return false
	}
	return rate != 0 || !strings.EqualFold(strings.TrimSpace(currency), base)
}

// Currencies handles GET /currencies.
func (h *Handler) Currencies(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(CurrenciesResponse{
		Base:       h.engine.Config().BaseCurrency,
		Currencies: pricing.Currencies(),
	})
}
