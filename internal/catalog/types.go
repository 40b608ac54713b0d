// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

// Package catalog holds the reference laptop catalog: the Specification
// record, the immutable Catalog of (specification, price) rows and the CSV
// loader with character-encoding fallback.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Unknown replaces empty categorical values before encoding.
const Unknown = "Unknown"

// Column names a specification attribute.
type Column string

// Categorical columns.
const (
	ColManufacturer     Column = "manufacturer"
	ColProduct          Column = "product"
	ColDeviceClass      Column = "device_class"
	ColScreenResolution Column = "screen_resolution"
	ColCPU              Column = "cpu"
	ColGPU              Column = "gpu"
	ColOperatingSystem  Column = "operating_system"
)

// Numeric columns.
const (
	ColScreenSize Column = "screen_size"
	ColRAM        Column = "ram"
	ColWeight     Column = "weight"
)

// CategoricalColumns is the fixed order of categorical features.
var CategoricalColumns = []Column{
	ColManufacturer,
	ColProduct,
	ColDeviceClass,
	ColScreenResolution,
	ColCPU,
	ColGPU,
	ColOperatingSystem,
}

// NumericColumns is the fixed order of numeric features.
var NumericColumns = []Column{ColScreenSize, ColRAM, ColWeight}

// IsCategorical reports whether c is one of CategoricalColumns.
func (c Column) IsCategorical() bool {
	for _, col := range CategoricalColumns {
		if col == c {
			return true
		}
	}
	return false
}

// ErrInvalidSpecification is returned by Specification.Validate.
var ErrInvalidSpecification = errors.New("invalid specification")

// Specification describes one laptop. Values are treated as immutable; all
// methods use value receivers and return copies.
type Specification struct {
	Manufacturer     string  `json:"manufacturer" validate:"required,max=64"`
	Product          string  `json:"product" validate:"required,max=128"`
	DeviceClass      string  `json:"device_class" validate:"required,max=64"`
	ScreenSize       float64 `json:"screen_size" validate:"gte=0,lte=100"`
	ScreenResolution string  `json:"screen_resolution" validate:"max=128"`
	CPU              string  `json:"cpu" validate:"max=128"`
	RAM              int     `json:"ram" validate:"gte=0,lte=4096"`
	GPU              string  `json:"gpu" validate:"max=128"`
	OperatingSystem  string  `json:"operating_system" validate:"max=64"`
	Weight           float64 `json:"weight" validate:"gte=0,lte=50"`
}

// Categorical returns the value of a categorical column.
func (s Specification) Categorical(c Column) string {
	switch c {
	case ColManufacturer:
		return s.Manufacturer
	case ColProduct:
		return s.Product
	case ColDeviceClass:
		return s.DeviceClass
	case ColScreenResolution:
		return s.ScreenResolution
	case ColCPU:
		return s.CPU
	case ColGPU:
		return s.GPU
	case ColOperatingSystem:
		return s.OperatingSystem
	default:
		return ""
	}
}

// Numeric returns the value of a numeric column.
func (s Specification) Numeric(c Column) float64 {
	switch c {
	case ColScreenSize:
		return s.ScreenSize
	case ColRAM:
		return float64(s.RAM)
	case ColWeight:
		return s.Weight
	default:
		return 0
	}
}

// Normalized returns a copy with surrounding whitespace trimmed and every
// empty categorical value replaced by Unknown.
func (s Specification) Normalized() Specification {
	fill := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return Unknown
		}
		return v
	}
	s.Manufacturer = fill(s.Manufacturer)
	s.Product = fill(s.Product)
	s.DeviceClass = fill(s.DeviceClass)
	s.ScreenResolution = fill(s.ScreenResolution)
	s.CPU = fill(s.CPU)
	s.GPU = fill(s.GPU)
	s.OperatingSystem = fill(s.OperatingSystem)
	return s
}

// Validate checks the numeric invariants: finite and non-negative.
func (s Specification) Validate() error {
	for _, c := range NumericColumns {
		v := s.Numeric(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidSpecification, c)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidSpecification, c, v)
		}
	}
	return nil
}

// Entry is one catalog row.
type Entry struct {
	ID     int           `json:"id"`
	Spec   Specification `json:"specification"`
	Memory string        `json:"memory,omitempty"`
	Price  float64       `json:"price"`
}

// Catalog is an ordered, immutable collection of entries.
type Catalog struct {
	entries  []Entry
	source   string
	encoding string
}

// New builds a catalog from entries. The slice is copied and every
// specification normalized.
func New(entries []Entry) *Catalog {
	cp := make([]Entry, len(entries))
	for i, e := range entries {
		e.Spec = e.Spec.Normalized()
		cp[i] = e
	}
	return &Catalog{entries: cp}
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns row i.
func (c *Catalog) At(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of all rows in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, c.Len())
	if c != nil {
		copy(out, c.entries)
	}
	return out
}

// Prices returns the target column in catalog order.
func (c *Catalog) Prices() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.entries[i].Price
	}
	return out
}

// Subset returns a new catalog with the rows at idx, in idx order.
func (c *Catalog) Subset(idx []int) *Catalog {
	out := &Catalog{entries: make([]Entry, len(idx)), source: c.source, encoding: c.encoding}
	for i, j := range idx {
		out.entries[i] = c.entries[j]
	}
	return out
}

// Source is the path the catalog was loaded from, if any.
func (c *Catalog) Source() string { return c.source }

// Encoding is the character encoding that decoded the source file.
func (c *Catalog) Encoding() string { return c.encoding }

// Unique returns the sorted distinct values of a categorical column.
func (c *Catalog) Unique(col Column) ([]string, error) {
	if !col.IsCategorical() {
		return nil, fmt.Errorf("column %q is not categorical", col)
	}
	seen := make(map[string]struct{})
	for _, e := range c.entries {
		seen[e.Spec.Categorical(col)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
