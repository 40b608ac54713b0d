// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/lapiprice/internal/metrics"
)

// DefaultEncodings is the order in which source encodings are tried.
var DefaultEncodings = []string{"utf-8", "latin1", "cp1250", "cp1252", "ISO-8859-1", "ISO-8859-2"}

// Source column headers.
const (
	headerID               = "laptop_ID"
	headerCompany          = "Company"
	headerProduct          = "Product"
	headerTypeName         = "TypeName"
	headerInches           = "Inches"
	headerScreenResolution = "ScreenResolution"
	headerCPU              = "Cpu"
	headerRAM              = "Ram"
	headerMemory           = "Memory"
	headerGPU              = "Gpu"
	headerOpSys            = "OpSys"
	headerWeight           = "Weight"
	headerPrice            = "Price_euros"
)

var requiredHeaders = []string{
	headerCompany, headerProduct, headerTypeName, headerInches, headerScreenResolution,
	headerCPU, headerRAM, headerGPU, headerOpSys, headerWeight, headerPrice,
}

// errUndecodable marks a byte sequence invalid in the attempted encoding.
var errUndecodable = errors.New("bytes not valid in encoding")

// LookupEncoding resolves an encoding name. A nil encoding with a nil error
// means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "iso-8859-2", "iso8859-2", "latin2", "latin-2":
		return charmap.ISO8859_2, nil
	case "cp1250", "windows-1250":
		return charmap.Windows1250, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Loader reads the reference catalog.
type Loader struct {
	encodings []string
	logger    zerolog.Logger
}

// NewLoader creates a loader that tries encodings in order. An empty list
// means DefaultEncodings.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(encodings []string, logger zerolog.Logger) *Loader {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	return &Loader{
		encodings: append([]string(nil), encodings...),
		logger:    logger.With().Str("component", "catalog").Logger(),
	}
}

// LoadFile reads and parses the catalog at path.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, &DataFormatError{Source: path, Reason: "cannot read file", Err: err}
	}
	return l.Load(data, path)
}

// Load decodes raw bytes with the first encoding that accepts them and parses
// the result. Only a decoding failure moves on to the next encoding; a parse
// failure after a successful decode is returned immediately.
func (l *Loader) Load(data []byte, source string) (*Catalog, error) {
	for _, name := range l.encodings {
		text, err := decode(data, name)
		if err != nil {
			metrics.CatalogEncodingAttempts.WithLabelValues(name, "invalid").Inc()
			l.logger.Debug().Str("encoding", name).Err(err).Msg("Encoding rejected catalog bytes")
			continue
		}
		metrics.CatalogEncodingAttempts.WithLabelValues(name, "ok").Inc()

		cat, err := Parse(strings.NewReader(text), source)
		if err != nil {
			return nil, err
		}
		cat.encoding = name
		metrics.CatalogRows.Set(float64(cat.Len()))
		l.logger.Info().
			Str("source", source).
			Str("encoding", name).
			Int("rows", cat.Len()).
			Msg("Catalog loaded")
		return cat, nil
	}

	return nil, &DataFormatError{
		Source: source,
		Reason: fmt.Sprintf("could not decode file, tried encodings %v", l.encodings),
	}
}

func decode(data []byte, name string) (string, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		if !utf8.Valid(data) {
			return "", errUndecodable
		}
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	// Single-byte code pages decode undefined bytes to U+FFFD instead of
	// failing; a replacement rune in the output means the page is wrong.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errUndecodable
	}
	return string(out), nil
}

// Parse reads an already-decoded CSV catalog.
func Parse(r io.Reader, source string) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &DataFormatError{Source: source, Line: 1, Reason: "cannot read header", Err: err}
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := cols[h]; !ok {
			return nil, &DataFormatError{Source: source, Line: 1, Column: h, Reason: "required column missing"}
		}
	}

	var entries []Entry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &DataFormatError{Source: source, Line: line, Reason: "malformed row", Err: err}
		}
		entry, err := parseRow(record, cols, line)
		if err != nil {
			var dfe *DataFormatError
			if errors.As(err, &dfe) {
				dfe.Source = source
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	cat := New(entries)
	cat.source = source
	return cat, nil
}

func parseRow(record []string, cols map[string]int, line int) (Entry, error) {
	field := func(h string) string {
		i, ok := cols[h]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(h, raw string) (float64, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &DataFormatError{Line: line, Column: h, Reason: fmt.Sprintf("value %q is not numeric", raw), Err: err}
		}
		return v, nil
	}

	var e Entry
	if raw := field(headerID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Entry{}, &DataFormatError{Line: line, Column: headerID, Reason: fmt.Sprintf("value %q is not an integer", raw), Err: err}
		}
		e.ID = id
	} else {
		e.ID = line - 1
	}

	screen, err := number(headerInches, field(headerInches))
	if err != nil {
		return Entry{}, err
	}
	ramRaw := StripUnit(field(headerRAM), "GB", "gb")
	ram, err := number(headerRAM, ramRaw)
	if err != nil {
		return Entry{}, err
	}
	if ram != math.Trunc(ram) {
		return Entry{}, &DataFormatError{Line: line, Column: headerRAM, Reason: fmt.Sprintf("value %q is not a whole number of gigabytes", ramRaw)}
	}
	weight, err := number(headerWeight, StripUnit(field(headerWeight), "kgs", "kg"))
	if err != nil {
		return Entry{}, err
	}
	price, err := number(headerPrice, field(headerPrice))
	if err != nil {
		return Entry{}, err
	}

	e.Spec = Specification{
		Manufacturer:     field(headerCompany),
		Product:          field(headerProduct),
		DeviceClass:      field(headerTypeName),
		ScreenSize:       screen,
		ScreenResolution: field(headerScreenResolution),
		CPU:              field(headerCPU),
		RAM:              int(ram),
		GPU:              field(headerGPU),
		OperatingSystem:  field(headerOpSys),
		Weight:           weight,
	}
	if err := e.Spec.Validate(); err != nil {
		return Entry{}, &DataFormatError{Line: line, Reason: "invalid numeric value", Err: err}
	}
	e.Memory = field(headerMemory)
	e.Price = price
	return e, nil
}

// StripUnit removes the first matching unit suffix and surrounding spaces.
func StripUnit(raw string, units ...string) string {
	raw = strings.TrimSpace(raw)
	for _, u := range units {
		if strings.HasSuffix(raw, u) {
			return strings.TrimSpace(strings.TrimSuffix(raw, u))
		}
	}
	return raw
}
