// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

/*
Package features turns catalog specifications into fixed-width numeric
vectors.

# Layout

Every vector is [screen_size, ram, weight, categorical...]. Numeric columns
are standardized with the population mean and standard deviation of the rows
the encoder was fitted on; a column with zero spread always encodes to 0.

Categorical columns are encoded according to the Strategy stored in the
EncoderState:

  - onehot/v1: one indicator per fitted value, all zeros for an unseen value
  - label/v1: a single feature holding 1..n for fitted values, 0 for unseen

The strategy is part of the fitted state and travels with every trained
model, so a model can never be fed vectors in a layout it was not trained
on.

# Fallbacks

Unseen categorical values never fail. Encode reports each one as a Fallback
so callers can count or log them; Transform drops that detail.

# Splitting

Split and KFold are deterministic for a given seed.
*/
package features
