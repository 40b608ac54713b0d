// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package metrics declares the Prometheus instruments for LapiPrice and small
// Record* helpers so call sites stay one line long.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog
	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapiprice_catalog_rows",
			Help: "Number of rows in the loaded reference catalog",
		},
	)

	CatalogEncodingAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_catalog_encoding_attempts_total",
			Help: "Character encodings tried while loading the catalog",
		},
		[]string{"encoding", "result"}, // result: "ok", "invalid"
	)

	// Feature encoding
	EncodingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_encoding_fallbacks_total",
			Help: "Categorical values unseen at fit time that were mapped to the fallback encoding",
		},
		[]string{"column"},
	)

	// Training
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_training_runs_total",
			Help: "Model training runs by kind and outcome",
		},
		[]string{"kind", "status"}, // kind: "select", "family"; status: "success", "error"
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lapiprice_training_duration_seconds",
			Help:    "Wall time of a training run",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"kind"},
	)

	CandidateFits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_candidate_fits_total",
			Help: "Individual model fits performed during cross-validated search",
		},
		[]string{"family"},
	)

	ModelR2 = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lapiprice_model_test_r2",
			Help: "Held-out coefficient of determination of the last evaluated model per family",
		},
		[]string{"family"},
	)

	ModelRMSE = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lapiprice_model_test_rmse",
			Help: "Held-out root mean squared error of the last evaluated model per family",
		},
		[]string{"family"},
	)

	ActiveModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapiprice_active_model_version",
			Help: "Version of the model currently serving predictions",
		},
	)

	// Prediction
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_predictions_total",
			Help: "Predictions served by model family and whether an interval was produced",
		},
		[]string{"family", "interval"}, // interval: "present", "absent"
	)

	// Recommendation
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lapiprice_recommendation_duration_seconds",
			Help:    "Time to rank the catalog against a query",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lapiprice_recommend_cache_hits_total",
			Help: "Rank results served from the recommendation cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lapiprice_recommend_cache_misses_total",
			Help: "Rank results computed because the cache had no entry",
		},
	)

	// Artifacts
	ArtifactOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_artifact_operations_total",
			Help: "Artifact store operations",
		},
		[]string{"operation", "status"}, // status: "success", "not_found", "error"
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapiprice_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lapiprice_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 30},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapiprice_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordTraining records one finished training run.
func RecordTraining(kind string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	TrainingRuns.WithLabelValues(kind, status).Inc()
	TrainingDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordModelScore publishes held-out metrics for a family.
func RecordModelScore(family string, r2, rmse float64) {
	ModelR2.WithLabelValues(family).Set(r2)
	ModelRMSE.WithLabelValues(family).Set(rmse)
}

// RecordPrediction counts one served prediction.
func RecordPrediction(family string, hasInterval bool) {
	interval := "absent"
	if hasInterval {
		interval = "present"
	}
	Predictions.WithLabelValues(family, interval).Inc()
}

// RecordArtifactOp counts one artifact store operation.
func RecordArtifactOp(operation, status string) {
	ArtifactOperations.WithLabelValues(operation, status).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
