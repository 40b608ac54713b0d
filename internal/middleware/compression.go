// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package middleware

import (
	"compress/flate"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// DefaultCompressionLevel favours latency over ratio for small JSON bodies.
const DefaultCompressionLevel = flate.BestSpeed

// compressibleTypes are the content types worth compressing. Prometheus
// exposition is plain text and is included.
var compressibleTypes = []string{
	"application/json",
	"text/plain",
}

// Compression gzips or deflates responses whose content type is JSON or
// plain text, for clients that advertise support. Levels outside
// [flate.BestSpeed, flate.BestCompression] fall back to the default.
func Compression(level int) func(http.Handler) http.Handler {
	if level < flate.BestSpeed || level > flate.BestCompression {
		level = DefaultCompressionLevel
	}
	return chimiddleware.Compress(level, compressibleTypes...)
}
