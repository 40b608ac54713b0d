// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package estimator

import (
	"sort"
)

// leaf marks a node without a split in Tree.Feature.
const leaf = -1

// Tree is a fitted CART regression tree stored as parallel node arrays. Node
// 0 is the root. A row goes left when x[Feature] <= Threshold.
type Tree struct {
	Feature   []int32   `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int32   `json:"left"`
	Right     []int32   `json:"right"`
	Value     []float64 `json:"value"`
}

// Predict returns the value of the leaf x falls into.
func (t *Tree) Predict(x []float64) float64 {
	n := int32(0)
	for t.Feature[n] != leaf {
		if x[t.Feature[n]] <= t.Threshold[n] {
			n = t.Left[n]
		} else {
			n = t.Right[n]
		}
	}
	return t.Value[n]
}

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int { return len(t.Value) }

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	var walk func(n int32) int
	walk = func(n int32) int {
		if t.Feature[n] == leaf {
			return 0
		}
		return 1 + max(walk(t.Left[n]), walk(t.Right[n]))
	}
	if len(t.Feature) == 0 {
		return 0
	}
	return walk(0)
}

// valid reports whether every split feature is below width and the node
// arrays are consistent.
func (t *Tree) valid(width int) bool {
	n := len(t.Value)
	if n == 0 || len(t.Feature) != n || len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n {
		return false
	}
	for i, f := range t.Feature {
		if f == leaf {
			continue
		}
		if f < 0 || int(f) >= width {
			return false
		}
		if l, r := t.Left[i], t.Right[i]; l <= int32(i) || r <= int32(i) || int(l) >= n || int(r) >= n {
			return false
		}
	}
	return true
}

// featureLayout classifies the columns of a training matrix. Columns whose
// values are all 0 or 1 are scored from the per-row list of ones, which keeps
// wide one-hot matrices cheap; all other columns are sorted per node.
type featureLayout struct {
	width   int
	dense   []int
	rowOnes [][]int32
}

func newFeatureLayout(X [][]float64) *featureLayout {
	l := &featureLayout{rowOnes: make([][]int32, len(X))}
	if len(X) == 0 {
		return l
	}
	l.width = len(X[0])

	binary := make([]bool, l.width)
	for f := range binary {
		binary[f] = true
	}
	for _, row := range X {
		for f, v := range row {
			if v != 0 && v != 1 {
				binary[f] = false
			}
		}
	}
	for f, b := range binary {
		if !b {
			l.dense = append(l.dense, f)
		}
	}
	for i, row := range X {
		for f, v := range row {
			if binary[f] && v == 1 {
				l.rowOnes[i] = append(l.rowOnes[i], int32(f))
			}
		}
	}
	return l
}

type treeConfig struct {
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
}

type split struct {
	feature   int
	threshold float64
	score     float64
}

type sample struct {
	x float64
	y float64
}

// treeBuilder grows one tree. It is not safe for concurrent use; every
// goroutine builds with its own builder over a shared, read-only layout.
type treeBuilder struct {
	cfg    treeConfig
	X      [][]float64
	y      []float64
	layout *featureLayout

	count   []int
	sum     []float64
	touched []int32
	samples []sample

	tree *Tree
}

func newTreeBuilder(cfg treeConfig, X [][]float64, y []float64, layout *featureLayout) *treeBuilder {
	return &treeBuilder{
		cfg:    cfg,
		X:      X,
		y:      y,
		layout: layout,
		count:  make([]int, layout.width),
		sum:    make([]float64, layout.width),
	}
}

// build grows a tree over the rows in idx. idx may repeat rows, which is how
// bootstrap samples are weighted.
func (b *treeBuilder) build(idx []int) *Tree {
	b.tree = &Tree{}
	b.grow(idx, 0)
	return b.tree
}

func (b *treeBuilder) addNode(value float64) int32 {
	t := b.tree
	t.Feature = append(t.Feature, leaf)
	t.Threshold = append(t.Threshold, 0)
	t.Left = append(t.Left, leaf)
	t.Right = append(t.Right, leaf)
	t.Value = append(t.Value, value)
	return int32(len(t.Value) - 1)
}

func (b *treeBuilder) grow(idx []int, depth int) int32 {
	n := len(idx)
	total := 0.0
	lo, hi := b.y[idx[0]], b.y[idx[0]]
	for _, i := range idx {
		v := b.y[i]
		total += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	node := b.addNode(total / float64(n))

	if n < b.cfg.minSamplesSplit || lo == hi || (b.cfg.maxDepth > 0 && depth >= b.cfg.maxDepth) {
		return node
	}

	best, ok := b.bestSplit(idx, total)
	if !ok {
		return node
	}

	left := make([]int, 0, n)
	right := make([]int, 0, n)
	for _, i := range idx {
		if b.X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.tree.Feature[node] = int32(best.feature)
	b.tree.Threshold[node] = best.threshold
	b.tree.Left[node] = l
	b.tree.Right[node] = r
	return node
}

// bestSplit maximizes sumL²/nL + sumR²/nR, which is equivalent to minimizing
// the summed squared error of the two children. The first feature reaching
// the maximum wins.
func (b *treeBuilder) bestSplit(idx []int, total float64) (split, bool) {
	n := len(idx)
	best := split{feature: -1}
	found := false

	consider := func(feature int, threshold float64, nl int, sl float64) {
		nr := n - nl
		sr := total - sl
		score := sl*sl/float64(nl) + sr*sr/float64(nr)
		if !found || score > best.score {
			best = split{feature: feature, threshold: threshold, score: score}
			found = true
		}
	}

	for _, f := range b.layout.dense {
		b.samples = b.samples[:0]
		for _, i := range idx {
			b.samples = append(b.samples, sample{x: b.X[i][f], y: b.y[i]})
		}
		s := b.samples
		sort.Slice(s, func(a, c int) bool { return s[a].x < s[c].x })
		if s[0].x == s[n-1].x {
			continue
		}
		sl := 0.0
		for k := 0; k < n-1; k++ {
			sl += s[k].y
			if s[k].x == s[k+1].x {
				continue
			}
			threshold := s[k].x + (s[k+1].x-s[k].x)/2
			if threshold >= s[k+1].x {
				threshold = s[k].x
			}
			consider(f, threshold, k+1, sl)
		}
	}

	b.touched = b.touched[:0]
	for _, i := range idx {
		for _, f := range b.layout.rowOnes[i] {
			if b.count[f] == 0 {
				b.touched = append(b.touched, f)
			}
			b.count[f]++
			b.sum[f] += b.y[i]
		}
	}
	for _, f := range b.touched {
		ones := b.count[f]
		if ones < n {
			// zeros go left
			consider(int(f), 0.5, n-ones, total-b.sum[f])
		}
		b.count[f] = 0
		b.sum[f] = 0
	}

	return best, found
}
