// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package history keeps a bounded, newest-first log of served predictions.
//
// Two backends implement Store: MemoryStore for single-process deployments
// and BadgerStore for history that survives restarts. Open selects one from
// configuration. Both evict the oldest entries once Capacity is reached.
package history
