// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

// CatalogSummary describes the loaded reference catalog.
type CatalogSummary struct {
	Rows        int      `json:"rows"`
	Source      string   `json:"source"`
	Encoding    string   `json:"encoding"`
	Categorical []string `json:"categorical_columns"`
	Numeric     []string `json:"numeric_columns"`
}

// CatalogInfo handles GET /catalog.
func (h *Handler) CatalogInfo(w http.ResponseWriter, r *http.Request) {
	cat := h.engine.Catalog()
	summary := CatalogSummary{
		Rows:        cat.Len(),
		Source:      cat.Source(),
		Encoding:    cat.Encoding(),
		Categorical: columnNames(catalog.CategoricalColumns),
		Numeric:     columnNames(catalog.NumericColumns),
	}
	NewResponseWriter(w, r).Success(summary)
}

// Facets handles GET /catalog/facets/{column}.
// Returns the sorted distinct values of a categorical column, for form
// dropdowns.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := FacetRequest{Column: chi.URLParam(r, "column")}
	if !validateRequest(rw, &req) {
		return
	}

	values, err := h.engine.Catalog().Unique(catalog.Column(req.Column))
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	rw.List(values, len(values))
}

func columnNames(cols []catalog.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}
