// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package middleware provides HTTP middleware for the API router.

Components:

  - RequestID: X-Request-ID propagation into the logging context
  - Instrument / PrometheusMetrics: request count, latency and in-flight gauge
    labelled by chi route pattern
  - PerformanceMonitor: sliding-window latency percentiles per endpoint and
    slow request logging
  - Compression: gzip/deflate for JSON and plain-text responses

All middleware has the func(http.Handler) http.Handler shape used by chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Instrument)
	r.Use(perf.Middleware)
	r.Use(middleware.Compression(middleware.DefaultCompressionLevel))

Metrics and the performance monitor read the route pattern after the handler
returns, so they must be registered on the router (or a sub-router) whose
routes they observe. Requests that match no route are labelled "unmatched".

All components are safe for concurrent use.
*/
package middleware
