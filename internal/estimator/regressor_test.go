// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Abs(b))
}

func TestLinearRegressionExact(t *testing.T) {
	t.Parallel()

	X := [][]float64{{0, 1}, {1, 0}, {2, 3}, {3, 1}, {4, 4}, {5, 2}}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 5 + 2*row[0] + 3*row[1]
	}

	var m LinearRegression
	if err := m.Fit(context.Background(), X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !near(m.Coef[0], 2) || !near(m.Coef[1], 3) || !near(m.Intercept, 5) {
		t.Errorf("Fit() = coef %v intercept %v, want [2 3] 5", m.Coef, m.Intercept)
	}
	if got := m.Predict([]float64{10, 10}); !near(got, 55) {
		t.Errorf("Predict() = %v, want 55", got)
	}
}

func TestLinearRegressionCollinear(t *testing.T) {
	t.Parallel()

	// Two one-hot columns that always sum to 1 make the design singular.
	X := [][]float64{{1, 0, 1}, {0, 1, 2}, {1, 0, 3}, {0, 1, 4}, {1, 0, 5}}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 10*row[0] + row[2]
	}

	var m LinearRegression
	if err := m.Fit(context.Background(), X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i, row := range X {
		if got := m.Predict(row); !near(got, y[i]) {
			t.Errorf("Predict(row %d) = %v, want %v", i, got, y[i])
		}
	}
	// Minimum-norm solution splits the group effect symmetrically.
	if !near(m.Coef[0], -m.Coef[1]) {
		t.Errorf("coef = %v, want opposite one-hot weights", m.Coef)
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	t.Parallel()

	var m LinearRegression
	if err := m.Fit(context.Background(), nil, nil); !errors.Is(err, ErrEmptyTrainingSet) {
		t.Errorf("Fit(empty) error = %v, want ErrEmptyTrainingSet", err)
	}
	if err := m.Fit(context.Background(), [][]float64{{1}}, nil); !errors.Is(err, ErrMissingTarget) {
		t.Errorf("Fit(no target) error = %v, want ErrMissingTarget", err)
	}
}

func TestTreeStepFunction(t *testing.T) {
	t.Parallel()

	X := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{5, 5, 5, 20, 20, 20}
	idx := []int{0, 1, 2, 3, 4, 5}

	b := newTreeBuilder(treeConfig{minSamplesSplit: 2}, X, y, newFeatureLayout(X))
	tree := b.build(idx)

	if tree.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", tree.NodeCount())
	}
	if tree.Threshold[0] != 6.5 {
		t.Errorf("root threshold = %v, want 6.5", tree.Threshold[0])
	}
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 5}, {3, 5}, {6.5, 5}, {7, 20}, {100, 20},
	}
	for _, tt := range tests {
		if got := tree.Predict([]float64{tt.x}); got != tt.want {
			t.Errorf("Predict(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestTreeOneHotSplit(t *testing.T) {
	t.Parallel()

	// Column 1 is binary; column 0 is constant and must never be chosen.
	X := [][]float64{{7, 0}, {7, 1}, {7, 0}, {7, 1}}
	y := []float64{1, 9, 1, 9}

	layout := newFeatureLayout(X)
	if !reflect.DeepEqual(layout.dense, []int{0}) {
		t.Errorf("dense = %v, want [0]", layout.dense)
	}
	if !reflect.DeepEqual(layout.rowOnes[1], []int32{1}) {
		t.Errorf("rowOnes[1] = %v, want [1]", layout.rowOnes[1])
	}

	tree := newTreeBuilder(treeConfig{minSamplesSplit: 2}, X, y, layout).build([]int{0, 1, 2, 3})
	if tree.Feature[0] != 1 || tree.Threshold[0] != 0.5 {
		t.Errorf("root split = feature %d threshold %v, want 1 0.5", tree.Feature[0], tree.Threshold[0])
	}
	if got := tree.Predict([]float64{7, 1}); got != 9 {
		t.Errorf("Predict(one) = %v, want 9", got)
	}
	if got := tree.Predict([]float64{7, 0}); got != 1 {
		t.Errorf("Predict(zero) = %v, want 1", got)
	}
}

func TestTreeMaxDepth(t *testing.T) {
	t.Parallel()

	X := make([][]float64, 32)
	y := make([]float64, 32)
	idx := make([]int, 32)
	for i := range X {
		X[i] = []float64{float64(i)}
		y[i] = float64(i * i)
		idx[i] = i
	}

	for _, depth := range []int{1, 2, 3} {
		tree := newTreeBuilder(treeConfig{maxDepth: depth, minSamplesSplit: 2}, X, y, newFeatureLayout(X)).build(idx)
		if got := tree.Depth(); got != depth {
			t.Errorf("Depth() = %d, want %d", got, depth)
		}
	}

	full := newTreeBuilder(treeConfig{minSamplesSplit: 2}, X, y, newFeatureLayout(X)).build(idx)
	for i, row := range X {
		if got := full.Predict(row); got != y[i] {
			t.Errorf("unlimited tree Predict(%v) = %v, want %v", row, got, y[i])
		}
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	t.Parallel()

	train, test := datasets(t, 60)
	fit := func() *RandomForest {
		m := &RandomForest{Params: Params{NEstimators: 15, Seed: 7}}
		if err := m.Fit(context.Background(), train.X, train.Y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		return m
	}

	a, b := fit(), fit()
	if len(a.Trees) != 15 {
		t.Fatalf("len(Trees) = %d, want 15", len(a.Trees))
	}
	for _, row := range test.X {
		if a.Predict(row) != b.Predict(row) {
			t.Fatal("same seed produced different forests")
		}
		members := a.PredictMembers(row)
		if len(members) != 15 {
			t.Fatalf("len(PredictMembers()) = %d, want 15", len(members))
		}
		sum := 0.0
		for _, v := range members {
			sum += v
		}
		if !near(sum/15, a.Predict(row)) {
			t.Errorf("Predict() = %v, want member mean %v", a.Predict(row), sum/15)
		}
	}
}

func TestGradientBoostingReducesError(t *testing.T) {
	t.Parallel()

	train, _ := datasets(t, 60)
	m := &GradientBoosting{Params: Params{NEstimators: 30}}
	if err := m.Fit(context.Background(), train.X, train.Y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if m.Params.MaxDepth != 3 || m.Params.LearningRate != 0.1 {
		t.Errorf("defaults = depth %d lr %v, want 3 0.1", m.Params.MaxDepth, m.Params.LearningRate)
	}

	baseline := make([]float64, train.Len())
	for i := range baseline {
		baseline[i] = m.Init
	}
	before := meanSquaredError(baseline, train.Y)
	after := meanSquaredError(predictAll(m, train.X), train.Y)
	if after >= before/2 {
		t.Errorf("training MSE %v not well below baseline %v", after, before)
	}
}

func TestFitCancelled(t *testing.T) {
	t.Parallel()

	train, _ := datasets(t, 40)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range []Regressor{
		&LinearRegression{},
		&RandomForest{Params: Params{NEstimators: 5}},
		&GradientBoosting{Params: Params{NEstimators: 5}},
	} {
		if err := r.Fit(ctx, train.X, train.Y); !errors.Is(err, context.Canceled) {
			t.Errorf("%s Fit() error = %v, want context.Canceled", r.Family(), err)
		}
	}
}

func TestModelStateRoundTrip(t *testing.T) {
	t.Parallel()

	train, test := datasets(t, 40)
	for _, family := range DefaultFamilies {
		r, err := newRegressor(family, Params{NEstimators: 5, Seed: 1})
		if err != nil {
			t.Fatalf("newRegressor(%s) error = %v", family, err)
		}
		if err := r.Fit(context.Background(), train.X, train.Y); err != nil {
			t.Fatalf("%s Fit() error = %v", family, err)
		}

		data, err := json.Marshal(stateOf(r))
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		var state ModelState
		if err := json.Unmarshal(data, &state); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		restored := state.Regressor()
		if restored == nil || restored.Family() != family {
			t.Fatalf("restored = %v, want family %s", restored, family)
		}
		for _, row := range test.X {
			if got, want := restored.Predict(row), r.Predict(row); got != want {
				t.Errorf("%s restored Predict() = %v, want %v", family, got, want)
				break
			}
		}
	}
}
