// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"testing"

	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/features"
)

// syntheticCatalog returns n laptops whose price is a deterministic function
// of RAM, manufacturer and device class.
func syntheticCatalog(n int) *catalog.Catalog {
	makers := []string{"HP", "Dell", "Apple", "Lenovo"}
	classes := []string{"Notebook", "Ultrabook", "Gaming"}
	rams := []int{4, 8, 16, 32}
	sizes := []float64{13.3, 14, 15.6, 17.3}
	makerBonus := map[string]float64{"HP": 0, "Dell": 50, "Apple": 400, "Lenovo": 25}
	classBonus := map[string]float64{"Notebook": 0, "Ultrabook": 300, "Gaming": 500}

	entries := make([]catalog.Entry, n)
	for i := range entries {
		maker := makers[i%len(makers)]
		class := classes[(i/2)%len(classes)]
		ram := rams[(i/3)%len(rams)]
		size := sizes[(i/5)%len(sizes)]
		entries[i] = catalog.Entry{
			ID: i + 1,
			Spec: catalog.Specification{
				Manufacturer:     maker,
				Product:          maker + " Model",
				DeviceClass:      class,
				ScreenSize:       size,
				ScreenResolution: "1920x1080",
				CPU:              "Intel Core i5",
				RAM:              ram,
				GPU:              "Intel UHD",
				OperatingSystem:  "Windows 10",
				Weight:           1.2 + size/20,
			},
			Price: 300 + 40*float64(ram) + makerBonus[maker] + classBonus[class],
		}
	}
	return catalog.New(entries)
}

func datasets(t *testing.T, n int) (train, test *Dataset) {
	t.Helper()

	cat := syntheticCatalog(n)
	trainCat, testCat, err := features.Split(cat, 0.2, 42)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	state, err := features.Fit(trainCat, features.StrategyOneHot)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return NewDataset(state, trainCat), NewDataset(state, testCat)
}

func smallOptions() SearchOptions {
	return SearchOptions{
		Folds:   3,
		Seed:    42,
		Workers: 2,
		Grids: map[Family]GridSpec{
			FamilyRandomForest:     {NEstimators: []int{10, 20}, MaxDepth: []int{0, 4}},
			FamilyGradientBoosting: {NEstimators: []int{20}, LearningRate: []float64{0.1, 0.3}},
		},
	}
}
