// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package services provides suture.Service wrappers for LapiPrice components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve method and implements fmt.Stringer for supervisor logs.

  - HTTPServerService runs an *http.Server and shuts it down gracefully.
  - TrainingService makes a model active at startup and reruns model
    selection on RetrainInterval. Failures are logged, never returned.
  - HistoryGCService reclaims badger value log space of the history store.

Dependencies are expressed as small interfaces (HTTPServer, ModelTrainer,
GarbageCollector) so tests can substitute fakes.
*/
package services
