// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package recommend finds catalog laptops comparable to a query specification.

# Scoring

Screen size, RAM and weight are standardized with a scaler fitted on the
whole catalog. The score of an entry is the cosine similarity between its
standardized vector and the query's, plus ManufacturerBonus when the
manufacturers match and DeviceClassBonus when the device classes match. The
bonuses are additive, so scores can exceed 1.

Results are sorted by descending score with a stable sort; entries with equal
scores keep catalog order.

# Filtering

Filter applies Criteria conjunctively to an already ranked list and never
re-ranks. Compare builds a side-by-side attribute table for a set of
specifications.

# Caching

The catalog never changes during the life of an Engine, so rankings are
cached in an LRU keyed by the fields that influence the score.
*/
package recommend
