// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package main is the entry point for the LapiPrice server.

LapiPrice estimates laptop prices from a specification using a regression
model selected from linear, random forest and gradient boosting candidates,
and recommends comparable laptops from the reference catalog.

# Application Architecture

	RootSupervisor ("lapiprice")
	├── ModelSupervisor ("model-layer")
	│   ├── TrainingService (load stored best model or run selection)
	│   └── HistoryGCService (HISTORY_BACKEND=badger only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router, /api/v1)

Initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog: CSV loaded with the configured encoding fallbacks
 4. Artifact store: versioned gzip artifacts under MODEL_DIR
 5. Prediction history: in-memory ring or BadgerDB
 6. Pricing and recommendation engines
 7. Supervisor tree and HTTP server

# Configuration

Priority: environment variables > config file > defaults.

	HTTP_PORT=8473                 # HTTP server port
	LOG_LEVEL=info                 # trace, debug, info, warn, error
	LOG_FORMAT=json                # json or console
	CATALOG_PATH=data/laptop_price.csv
	MODEL_DIR=data/models
	MODEL_KEEP=5                   # artifact versions kept per name
	TRAINING_FAMILIES=linear,random_forest,gradient_boosting
	TRAIN_ON_STARTUP=true
	RETRAIN_INTERVAL=0             # 0 disables periodic reselection
	HISTORY_BACKEND=memory         # memory or badger
	CORS_ORIGINS=*

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT, background training runs are
canceled and the history store is closed.
*/
package main
