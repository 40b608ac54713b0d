// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package recommend

import (
	"reflect"
	"testing"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

func ranked(entries ...catalog.Entry) []Recommendation {
	out := make([]Recommendation, len(entries))
	for i, e := range entries {
		out[i] = Recommendation{Entry: e, Score: float64(len(entries) - i)}
	}
	return out
}

func resultIDs(rs []Recommendation) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Entry.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	ram16, ram0 := 16, 0
	price1000, price0 := 1000.0, 0.0

	a := laptop(1, "HP", "Notebook", 15.6, 8, 2, 600)
	b := laptop(2, "Dell", "Notebook", 15.6, 32, 2, 1500)
	c := laptop(3, "HP", "Gaming", 17.3, 16, 3, 900)
	c.Spec.CPU = "AMD Ryzen 7"
	c.Spec.GPU = "AMD Radeon RX 580"
	results := ranked(a, b, c)

	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{"empty passes all", Criteria{}, []int{1, 2, 3}},
		{"ram_min keeps order", Criteria{RAMMin: &ram16}, []int{2, 3}},
		{"ram_min zero", Criteria{RAMMin: &ram0}, []int{1, 2, 3}},
		{"manufacturer exact", Criteria{Manufacturer: "HP"}, []int{1, 3}},
		{"manufacturer case sensitive", Criteria{Manufacturer: "hp"}, []int{}},
		{"cpu substring", Criteria{CPU: "ryzen"}, []int{3}},
		{"gpu substring", Criteria{GPU: "GEFORCE"}, []int{1, 2}},
		{"price max", Criteria{PriceMax: &price1000}, []int{1, 3}},
		{"price max zero is unset", Criteria{PriceMax: &price0}, []int{1, 2, 3}},
		{"conjunction", Criteria{Manufacturer: "HP", RAMMin: &ram16, PriceMax: &price1000}, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resultIDs(Filter(results, tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaIsEmpty(t *testing.T) {
	t.Parallel()

	if !(Criteria{}).IsEmpty() {
		t.Error("zero Criteria IsEmpty() = false")
	}
	ram := 8
	if (Criteria{RAMMin: &ram}).IsEmpty() {
		t.Error("Criteria with ram_min IsEmpty() = true")
	}
	zero := 0.0
	if !(Criteria{PriceMax: &zero}).IsEmpty() {
		t.Error("Criteria with price_max 0 IsEmpty() = false")
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	a := laptop(1, "HP", "Notebook", 15.6, 8, 2, 600).Spec
	b := laptop(2, "Apple", "Ultrabook", 13.3, 16, 1.37, 1500).Spec

	cmp := Compare([]catalog.Specification{a, b})
	if len(cmp.Laptops) != 2 {
		t.Fatalf("len(Laptops) = %d, want 2", len(cmp.Laptops))
	}
	if got := cmp.Attributes["manufacturer"]; !reflect.DeepEqual(got, []any{"HP", "Apple"}) {
		t.Errorf("manufacturer = %v", got)
	}
	if got := cmp.Attributes["ram"]; !reflect.DeepEqual(got, []any{8, 16}) {
		t.Errorf("ram = %v", got)
	}
	if got := cmp.Attributes["weight"]; !reflect.DeepEqual(got, []any{2.0, 1.37}) {
		t.Errorf("weight = %v", got)
	}
	if len(cmp.Attributes) != len(catalog.CategoricalColumns)+len(catalog.NumericColumns) {
		t.Errorf("attributes = %d, want every column", len(cmp.Attributes))
	}

	empty := Compare(nil)
	if len(empty.Laptops) != 0 || len(empty.Attributes) != 0 {
		t.Errorf("Compare(nil) = %+v, want empty", empty)
	}
}
