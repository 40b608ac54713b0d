// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package features

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

func spec(manufacturer, class string, screen float64, ram int, weight float64) catalog.Specification {
	return catalog.Specification{
		Manufacturer:     manufacturer,
		Product:          manufacturer + " " + class,
		DeviceClass:      class,
		ScreenSize:       screen,
		ScreenResolution: "1920x1080",
		CPU:              "Intel Core i5",
		RAM:              ram,
		GPU:              "Intel HD",
		OperatingSystem:  "Windows 10",
		Weight:           weight,
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{ID: 1, Spec: spec("HP", "Notebook", 15.6, 8, 2.0), Price: 600},
		{ID: 2, Spec: spec("Dell", "Ultrabook", 13.3, 16, 1.2), Price: 1200},
		{ID: 3, Spec: spec("Asus", "Gaming", 17.3, 32, 3.0), Price: 1800},
		{ID: 4, Spec: spec("HP", "Notebook", 14.0, 4, 1.6), Price: 400},
	})
}

func TestFitWidthIsFixed(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	tests := []struct {
		strategy Strategy
		// 3 numeric + manufacturer(3) product(3) class(3) resolution(1) cpu(1) gpu(1) os(1)
		want int
	}{
		{StrategyOneHot, 3 + 3 + 3 + 3 + 1 + 1 + 1 + 1},
		{StrategyLabel, 3 + 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			t.Parallel()
			state, err := Fit(cat, tt.strategy)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if state.Width() != tt.want {
				t.Errorf("Width() = %d, want %d", state.Width(), tt.want)
			}
			if got := len(state.FeatureNames()); got != tt.want {
				t.Errorf("len(FeatureNames()) = %d, want %d", got, tt.want)
			}

			queries := []catalog.Specification{
				cat.At(0).Spec,
				spec("Razer", "Workstation", 99, 512, 0),
				{},
			}
			for _, q := range queries {
				if got := len(state.Transform(q)); got != tt.want {
					t.Errorf("len(Transform(%+v)) = %d, want %d", q, got, tt.want)
				}
			}
		})
	}
}

func TestTransformDeterministic(t *testing.T) {
	t.Parallel()

	state, err := Fit(testCatalog(), StrategyOneHot)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	q := spec("Dell", "Ultrabook", 13.3, 16, 1.2)

	a := state.Transform(q)
	b := state.Transform(q)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Transform not deterministic: %v != %v", a, b)
	}
}

func TestTransformUnseenCategory(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	q := spec("Razer", "Notebook", 15.6, 8, 2.0)

	t.Run("onehot zero block", func(t *testing.T) {
		t.Parallel()
		state, err := Fit(cat, StrategyOneHot)
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		enc := state.Encode(q)

		// manufacturer block follows the 3 numeric columns and has 3 entries.
		for i, v := range enc.Vector[3:6] {
			if v != 0 {
				t.Errorf("manufacturer block[%d] = %v, want 0", i, v)
			}
		}
		wantFallbacks := []Fallback{
			{Column: catalog.ColManufacturer, Value: "Razer"},
			{Column: catalog.ColProduct, Value: "Razer Notebook"},
		}
		if !reflect.DeepEqual(enc.Fallbacks, wantFallbacks) {
			t.Errorf("Fallbacks = %+v, want %+v", enc.Fallbacks, wantFallbacks)
		}
	})

	t.Run("label index zero", func(t *testing.T) {
		t.Parallel()
		state, err := Fit(cat, StrategyLabel)
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		vec := state.Transform(q)
		if vec[3] != 0 {
			t.Errorf("manufacturer label = %v, want 0", vec[3])
		}
		// Notebook is position 1 of [Gaming Notebook Ultrabook], so its label is 2.
		if vec[5] != 2 {
			t.Errorf("device class label = %v, want 2", vec[5])
		}
	})
}

func TestTransformZeroVariance(t *testing.T) {
	t.Parallel()

	cat := catalog.New([]catalog.Entry{
		{Spec: spec("HP", "Notebook", 15.6, 8, 2.0)},
		{Spec: spec("HP", "Notebook", 15.6, 16, 2.5)},
		{Spec: spec("Dell", "Notebook", 15.6, 4, 1.5)},
	})
	state, err := Fit(cat, StrategyOneHot)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for _, screen := range []float64{15.6, 11, 0} {
		vec := state.Transform(spec("HP", "Notebook", screen, 8, 2.0))
		if vec[0] != 0 || math.IsNaN(vec[0]) || math.IsInf(vec[0], 0) {
			t.Errorf("screen axis for %v = %v, want 0", screen, vec[0])
		}
	}
}

func TestTransformStandardizes(t *testing.T) {
	t.Parallel()

	cat := catalog.New([]catalog.Entry{
		{Spec: spec("HP", "Notebook", 10, 4, 1)},
		{Spec: spec("HP", "Notebook", 20, 8, 3)},
	})
	state, err := Fit(cat, StrategyOneHot)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	// mean 15, population std 5
	vec := state.Transform(spec("HP", "Notebook", 25, 4, 1))
	if vec[0] != 2 {
		t.Errorf("screen z-score = %v, want 2", vec[0])
	}
	if vec[1] != -1 {
		t.Errorf("ram z-score = %v, want -1", vec[1])
	}
}

func TestFitErrors(t *testing.T) {
	t.Parallel()

	if _, err := Fit(catalog.New(nil), StrategyOneHot); !errors.Is(err, catalog.ErrDataFormat) {
		t.Errorf("Fit(empty) error = %v, want ErrDataFormat", err)
	}
	if _, err := Fit(testCatalog(), Strategy("hash/v9")); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Fit(bad strategy) error = %v, want ErrUnknownStrategy", err)
	}

	nan := catalog.New([]catalog.Entry{{Spec: catalog.Specification{Weight: math.NaN()}}})
	if _, err := Fit(nan, StrategyOneHot); !errors.Is(err, catalog.ErrDataFormat) {
		t.Errorf("Fit(NaN) error = %v, want ErrDataFormat", err)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyOneHot, false},
		{"onehot/v1", StrategyOneHot, false},
		{"label/v1", StrategyLabel, false},
		{"onehot", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransformAllCountsFallbacks(t *testing.T) {
	t.Parallel()

	train := testCatalog()
	state, err := Fit(train.Subset([]int{0, 1}), StrategyOneHot)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	rows, fallbacks := state.TransformAll(train.Subset([]int{2}))
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	// Asus, its product and the Gaming class are all unseen.
	if fallbacks != 3 {
		t.Errorf("fallbacks = %d, want 3", fallbacks)
	}
}
