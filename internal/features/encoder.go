// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package features

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

// Strategy is the versioned categorical encoding layout. It is stored in
// every EncoderState so a model always knows the feature layout it was
// trained against.
type Strategy string

const (
	// StrategyOneHot expands each categorical column into one indicator per
	// fitted value. Unseen values produce an all-zero block.
	StrategyOneHot Strategy = "onehot/v1"

	// StrategyLabel maps each categorical column to a single integer
	// feature: 1..n for fitted values in sorted order, 0 for unseen values.
	StrategyLabel Strategy = "label/v1"
)

// DefaultStrategy is the canonical layout.
const DefaultStrategy = StrategyOneHot

// ErrUnknownStrategy is returned for strategy names this build cannot encode.
var ErrUnknownStrategy = errors.New("unknown encoding strategy")

// ParseStrategy validates a strategy name. An empty name is DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "":
		return DefaultStrategy, nil
	case StrategyOneHot, StrategyLabel:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NumericColumn is the fitted state of one numeric column.
type NumericColumn struct {
	Column catalog.Column `json:"column"`
	Scale
}

// Vocabulary is the sorted set of values a categorical column had at fit
// time.
type Vocabulary struct {
	Column catalog.Column `json:"column"`
	Values []string       `json:"values"`
}

// index returns the position of v in the vocabulary or -1.
func (v Vocabulary) index(value string) int {
	i := sort.SearchStrings(v.Values, value)
	if i < len(v.Values) && v.Values[i] == value {
		return i
	}
	return -1
}

// EncoderState is the fitted transformation from Specification to vector.
// It is never modified after Fit returns and is safe for concurrent use.
type EncoderState struct {
	Strategy    Strategy        `json:"strategy"`
	Numeric     []NumericColumn `json:"numeric"`
	Categorical []Vocabulary    `json:"categorical"`
	Rows        int             `json:"rows"`
	FittedAt    time.Time       `json:"fitted_at"`
}

// Fallback records a categorical value that was not seen at fit time and was
// encoded with the fallback (zero block or index 0).
type Fallback struct {
	Column catalog.Column `json:"column"`
	Value  string         `json:"value"`
}

// Encoded is a transformed specification together with the fallbacks taken.
type Encoded struct {
	Vector    []float64  `json:"vector"`
	Fallbacks []Fallback `json:"fallbacks,omitempty"`
}

// Fit builds an EncoderState from the catalog rows.
func Fit(cat *catalog.Catalog, strategy Strategy) (*EncoderState, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	if strategy == "" {
		strategy = DefaultStrategy
	}
	if cat.Len() == 0 {
		return nil, &catalog.DataFormatError{Source: cat.Source(), Reason: "cannot fit encoder on an empty catalog"}
	}

	state := &EncoderState{
		Strategy: strategy,
		Rows:     cat.Len(),
		FittedAt: time.Now().UTC(),
	}

	values := make([]float64, cat.Len())
	for _, col := range catalog.NumericColumns {
		for i := 0; i < cat.Len(); i++ {
			values[i] = cat.At(i).Spec.Numeric(col)
		}
		scale, err := FitScale(values)
		if err != nil {
			return nil, &catalog.DataFormatError{Source: cat.Source(), Column: string(col), Reason: "cannot fit scaler", Err: err}
		}
		state.Numeric = append(state.Numeric, NumericColumn{Column: col, Scale: scale})
	}

	for _, col := range catalog.CategoricalColumns {
		vocab, err := cat.Unique(col)
		if err != nil {
			return nil, err
		}
		state.Categorical = append(state.Categorical, Vocabulary{Column: col, Values: vocab})
	}

	return state, nil
}

// Width is the length of every vector produced by Transform.
func (s *EncoderState) Width() int {
	w := len(s.Numeric)
	for _, v := range s.Categorical {
		if s.Strategy == StrategyLabel {
			w++
		} else {
			w += len(v.Values)
		}
	}
	return w
}

// FeatureNames returns a name for every vector position, in order.
func (s *EncoderState) FeatureNames() []string {
	names := make([]string, 0, s.Width())
	for _, n := range s.Numeric {
		names = append(names, string(n.Column))
	}
	for _, v := range s.Categorical {
		if s.Strategy == StrategyLabel {
			names = append(names, string(v.Column))
			continue
		}
		for _, val := range v.Values {
			names = append(names, string(v.Column)+"_"+val)
		}
	}
	return names
}

// Transform maps spec to a vector in the order [numeric..., categorical...].
func (s *EncoderState) Transform(spec catalog.Specification) []float64 {
	return s.Encode(spec).Vector
}

// Encode is Transform plus the list of fallbacks taken.
func (s *EncoderState) Encode(spec catalog.Specification) Encoded {
	spec = spec.Normalized()
	vec := make([]float64, s.Width())
	var fallbacks []Fallback

	pos := 0
	for _, n := range s.Numeric {
		vec[pos] = n.Apply(spec.Numeric(n.Column))
		pos++
	}

	for _, v := range s.Categorical {
		value := spec.Categorical(v.Column)
		idx := v.index(value)
		if idx < 0 {
			fallbacks = append(fallbacks, Fallback{Column: v.Column, Value: value})
		}

		if s.Strategy == StrategyLabel {
			vec[pos] = float64(idx + 1) // unseen: -1 + 1 = 0
			pos++
			continue
		}
		if idx >= 0 {
			vec[pos+idx] = 1
		}
		pos += len(v.Values)
	}

	return Encoded{Vector: vec, Fallbacks: fallbacks}
}

// TransformAll encodes every catalog row, returning the row-major matrix data
// and the number of fallbacks taken across all rows.
func (s *EncoderState) TransformAll(cat *catalog.Catalog) (rows [][]float64, fallbacks int) {
	rows = make([][]float64, cat.Len())
	for i := range rows {
		enc := s.Encode(cat.At(i).Spec)
		rows[i] = enc.Vector
		fallbacks += len(enc.Fallbacks)
	}
	return rows, fallbacks
}
