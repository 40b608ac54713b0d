// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package features

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

// ErrInvalidSplit is returned when a split would leave one side empty.
var ErrInvalidSplit = errors.New("invalid train/test split")

// Split partitions the catalog into train and test sets. The test side gets
// ceil(n*testFraction) rows drawn by a permutation seeded with seed, so the
// same catalog, fraction and seed always give the same partition. Both sides
// keep catalog order.
func Split(cat *catalog.Catalog, testFraction float64, seed int64) (train, test *catalog.Catalog, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: test fraction must be in (0, 1), got %v", ErrInvalidSplit, testFraction)
	}
	n := cat.Len()
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 || nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d rows cannot be split with test fraction %v", ErrInvalidSplit, n, testFraction)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible partitioning, not security sensitive
	perm := rng.Perm(n)

	testIdx := append([]int(nil), perm[:nTest]...)
	trainIdx := append([]int(nil), perm[nTest:]...)
	sort.Ints(testIdx)
	sort.Ints(trainIdx)

	return cat.Subset(trainIdx), cat.Subset(testIdx), nil
}

// KFold returns k disjoint validation index sets covering 0..n-1. Indices are
// shuffled with seed before being dealt into folds; the first n%k folds get
// one extra row.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 || k > n {
		return nil, fmt.Errorf("%w: cannot make %d folds from %d rows", ErrInvalidSplit, k, n)
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible partitioning, not security sensitive
	perm := rng.Perm(n)

	folds := make([][]int, k)
	start := 0
	for f := 0; f < k; f++ {
		size := n / k
		if f < n%k {
			size++
		}
		fold := append([]int(nil), perm[start:start+size]...)
		sort.Ints(fold)
		folds[f] = fold
		start += size
	}
	return folds, nil
}
