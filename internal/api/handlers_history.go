// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/lapiprice/internal/history"
)

// ListHistory handles GET /history.
// Returns recorded predictions, newest first. limit 0 returns all.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, ok := getIntParam(r, "limit", 0)
	if !ok {
		rw.BadRequest("limit must be an integer")
		return
	}
	req := HistoryRequest{Limit: limit}
	if !validateRequest(rw, &req) {
		return
	}

	entries, err := h.history.List(r.Context(), req.Limit)
	if err != nil {
		respondError(rw, r, err)
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}
	rw.List(entries, len(entries))
}

// GetHistory handles GET /history/{id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rw.BadRequest("id must be a UUID")
		return
	}

	entry, err := h.history.Get(r.Context(), id)
	if err != nil {
		respondError(rw, r, err)
		return
	}
	rw.Success(entry)
}

// ClearHistory handles DELETE /history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	removed, err := h.history.Clear(r.Context())
	if err != nil {
		respondError(rw, r, err)
		return
	}
	h.logger.Info().Int("removed", removed).Msg("Prediction history cleared")
	rw.Success(map[string]int{"removed": removed})
}
