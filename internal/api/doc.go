// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package api exposes the pricing engine over HTTP using the chi router.

Endpoints (prefix /api/v1):

	GET    /health/live              process liveness
	GET    /health/ready             200 once a model is active, else 503
	POST   /encode                   specification -> feature vector
	POST   /predict                  specification -> price estimate
	POST   /recommend                specification -> similar catalog laptops
	POST   /compare                  specifications -> attribute table
	GET    /currencies               supported currency tags
	GET    /performance              latency percentiles per endpoint
	GET    /models                   stored artifacts
	GET    /models/best              model serving predictions
	GET    /models/status            training status
	POST   /models/train             model selection or ?family= training
	GET    /history                  recorded predictions, newest first
	GET    /history/{id}             one recorded prediction
	DELETE /history                  clear recorded predictions
	GET    /catalog                  catalog summary
	GET    /catalog/facets/{column}  distinct values of a categorical column

Prometheus metrics are served at /metrics outside the API prefix.

Responses:

Every response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_FAILED", "message": "..."}, "meta": {...}}

Domain errors map to status codes in errorStatus: invalid input 400,
missing artifacts or history entries 404, a concurrent training run 409,
training failures 422, no active model 503.

Middleware:

Requests pass through request ID propagation, real IP extraction, panic
recovery and CORS globally. The API prefix adds Prometheus instrumentation,
the performance monitor, security headers and compression. Non-health
routes are rate limited per client IP with go-chi/httprate and have their
bodies capped. Manual training is additionally limited process-wide with a
golang.org/x/time/rate token bucket.

Request bodies are decoded with goccy/go-json, rejecting unknown fields, and
validated with the validation package.
*/
package api
