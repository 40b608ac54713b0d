// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/lapiprice/internal/middleware"
	"github.com/tomtom215/lapiprice/internal/pricing"
)

// ReadinessStatus is the payload of GET /health/ready.
type ReadinessStatus struct {
	Ready        bool                   `json:"ready"`
	CatalogRows  int                    `json:"catalog_rows"`
	Model        *pricing.ModelInfo     `json:"model,omitempty"`
	Training     pricing.TrainingStatus `json:"training"`
	UptimeSecond float64                `json:"uptime_seconds"`
}

// HealthLive handles GET /health/live.
// Returns 200 OK if the process is alive, regardless of model state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready.
// Returns 200 once a model is active and 503 before that, with the same body.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadinessStatus{
		Ready:        h.engine.Ready(),
		CatalogRows:  h.engine.Catalog().Len(),
		Model:        h.engine.ActiveInfo(),
		Training:     h.engine.Status(),
		UptimeSecond: time.Since(h.startTime).Seconds(),
	}

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "no model is active yet", status)
		return
	}
	rw.Success(status)
}

// Performance handles GET /performance.
// Returns latency percentiles per endpoint over the recent request window.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	stats := []middleware.EndpointStats{}
	if h.perfMon != nil {
		stats = h.perfMon.GetStats()
	}
	NewResponseWriter(w, r).List(stats, len(stats))
}
