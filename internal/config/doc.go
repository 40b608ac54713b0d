// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package config provides centralized configuration management for LapiPrice.

# Configuration Sources

Configuration is layered with Koanf v2, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - YAML file: CONFIG_PATH, else config.yaml or /etc/lapiprice/config.yaml
  - Environment variables with explicit names (HTTP_PORT, CATALOG_PATH, ...)

Environment variables that are not mapped are ignored.

# Configuration Structure

  - Server: HTTP listener and shutdown
  - Logging: zerolog level, format and caller
  - Catalog: CSV path and decoding order
  - Features: categorical encoding strategy
  - Training: candidate families, split, cross-validation, grids, retraining
  - Artifacts: model store directory and version retention
  - Recommend: ranking limits, bonuses and cache
  - History: prediction history backend
  - Security: rate limiting, CORS and request size

# Example YAML

	catalog:
	  path: /data/laptop_price.csv
	training:
	  families: [linear, random_forest]
	  folds: 5
	  random_forest:
	    n_estimators: [100, 200]
	    max_depth: [0, 10]
	history:
	  backend: badger
	  path: /data/history
*/
package config
