// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package recommend

import (
	"strings"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

// Recommendation is one ranked catalog entry.
type Recommendation struct {
	// Entry is the catalog row.
	Entry catalog.Entry `json:"entry"`

	// Score is Similarity plus Bonus. It is unbounded above.
	Score float64 `json:"score"`

	// Similarity is the cosine similarity of the standardized numeric
	// features, in [-1, 1].
	Similarity float64 `json:"similarity"`

	// Bonus is the categorical match bonus.
	Bonus float64 `json:"bonus"`
}

// Criteria narrows a recommendation list. Unset fields pass every entry.
type Criteria struct {
	// Manufacturer must equal the entry manufacturer exactly.
	Manufacturer string `json:"manufacturer,omitempty" validate:"omitempty,max=64"`

	// CPU is a case-insensitive substring of the entry CPU.
	CPU string `json:"cpu,omitempty" validate:"omitempty,max=128"`

	// GPU is a case-insensitive substring of the entry GPU.
	GPU string `json:"gpu,omitempty" validate:"omitempty,max=128"`

	// RAMMin is the minimum RAM in GB.
	RAMMin *int `json:"ram_min,omitempty" validate:"omitempty,gte=0"`

	// PriceMax is the maximum catalog price. Zero means no ceiling.
	PriceMax *float64 `json:"price_max,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether no criterion is set.
//
//nolint:gocritic // Criteria is read-only here
func (c Criteria) IsEmpty() bool {
	return c.Manufacturer == "" && c.CPU == "" && c.GPU == "" && c.RAMMin == nil && !c.hasPriceMax()
}

//nolint:gocritic // Criteria is read-only here
func (c Criteria) hasPriceMax() bool {
	return c.PriceMax != nil && *c.PriceMax > 0
}

// Matches reports whether e satisfies every set criterion.
//
//nolint:gocritic // Criteria is read-only here
func (c Criteria) Matches(e catalog.Entry) bool {
	if c.Manufacturer != "" && e.Spec.Manufacturer != c.Manufacturer {
		return false
	}
	if c.CPU != "" && !strings.Contains(strings.ToLower(e.Spec.CPU), strings.ToLower(c.CPU)) {
		return false
	}
	if c.GPU != "" && !strings.Contains(strings.ToLower(e.Spec.GPU), strings.ToLower(c.GPU)) {
		return false
	}
	if c.RAMMin != nil && e.Spec.RAM < *c.RAMMin {
		return false
	}
	if c.hasPriceMax() && e.Price > *c.PriceMax {
		return false
	}
	return true
}

// Filter returns the results matching c, preserving order. It never
// re-ranks.
//
//nolint:gocritic // Criteria is read-only here
func Filter(results []Recommendation, c Criteria) []Recommendation {
	out := make([]Recommendation, 0, len(results))
	for _, r := range results {
		if c.Matches(r.Entry) {
			out = append(out, r)
		}
	}
	return out
}

// Comparison is a side-by-side attribute table. Attributes[name][i] is the
// value of the i-th laptop.
type Comparison struct {
	Laptops    []catalog.Specification `json:"laptops"`
	Attributes map[string][]any        `json:"attributes"`
}

// Compare tabulates every specification attribute across specs.
func Compare(specs []catalog.Specification) Comparison {
	cmp := Comparison{
		Laptops:    make([]catalog.Specification, len(specs)),
		Attributes: make(map[string][]any, len(catalog.CategoricalColumns)+len(catalog.NumericColumns)),
	}
	copy(cmp.Laptops, specs)

	for _, s := range specs {
		for _, col := range catalog.CategoricalColumns {
			cmp.Attributes[string(col)] = append(cmp.Attributes[string(col)], s.Categorical(col))
		}
		for _, col := range catalog.NumericColumns {
			var v any = s.Numeric(col)
			if col == catalog.ColRAM {
				v = s.RAM
			}
			cmp.Attributes[string(col)] = append(cmp.Attributes[string(col)], v)
		}
	}
	return cmp
}
