// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/lapiprice/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler          *Handler
	chiMiddleware    *ChiMiddleware
	compressionLevel int
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:          handler,
		chiMiddleware:    mw,
		compressionLevel: middleware.DefaultCompressionLevel,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route, including /metrics
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Instrument)
		if router.handler.perfMon != nil {
			r.Use(router.handler.perfMon.Middleware)
		}
		r.Use(APISecurityHeaders())
		r.Use(middleware.Compression(router.compressionLevel))

		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.chiMiddleware.MaxBodySize())

			r.Post("/encode", router.handler.Encode)
			r.Post("/predict", router.handler.Predict)
			r.Post("/recommend", router.handler.Recommend)
			r.Post("/compare", router.handler.Compare)
			r.Get("/currencies", router.handler.Currencies)
			r.Get("/performance", router.handler.Performance)

			r.Route("/models", func(r chi.Router) {
				r.Get("/", router.handler.ListModels)
				r.Get("/best", router.handler.BestModel)
				r.Get("/status", router.handler.TrainingStatus)
				r.Post("/train", router.handler.Train)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/", router.handler.ListHistory)
				r.Delete("/", router.handler.ClearHistory)
				r.Get("/{id}", router.handler.GetHistory)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/", router.handler.CatalogInfo)
				r.Get("/facets/{column}", router.handler.Facets)
			})
		})
	})

	return r
}
