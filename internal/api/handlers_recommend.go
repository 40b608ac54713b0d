// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"

	"github.com/tomtom215/lapiprice/internal/recommend"
)

// Recommend handles POST /recommend.
// Returns the catalog laptops most similar to the specification, best first,
// narrowed by the optional filter.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if !bindJSON(rw, r, &req) || !validateRequest(rw, &req) {
		return
	}
	if err := req.Specification.Validate(); err != nil {
		respondError(rw, r, err)
		return
	}

	results, err := h.engine.Recommend(r.Context(), req.Specification, req.Limit, req.Filter)
	if err != nil {
		respondError(rw, r, err)
		return
	}
	if results == nil {
		results = []recommend.Recommendation{}
	}
	rw.List(results, len(results))
}

// Compare handles POST /compare.
// Returns a side-by-side attribute table of 2 to 10 specifications.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CompareRequest
	if !bindJSON(rw, r, &req) || !validateRequest(rw, &req) {
		return
	}
	for _, spec := range req.Laptops {
		if err := spec.Validate(); err != nil {
			respondError(rw, r, err)
			return
		}
	}

	rw.Success(recommend.Compare(req.Laptops))
}
