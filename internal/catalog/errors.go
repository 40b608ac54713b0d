// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataFormat matches every *DataFormatError with errors.Is.
var ErrDataFormat = errors.New("data format error")

// DataFormatError reports a catalog source that cannot be decoded or parsed:
// a missing required column, a value that is not numeric after stripping its
// unit, or a file no configured encoding can decode.
type DataFormatError struct {
	Source string
	Line   int
	Column string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("catalog")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DataFormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataFormat) true.
func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }
