// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package pricing

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownCurrency is returned for a currency code outside the table.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrInvalidRate is returned for a non-positive or non-finite rate.
	ErrInvalidRate = errors.New("invalid conversion rate")
)

// Currency is a supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var currencies = map[string]Currency{
	"USD": {"USD", "$", "US Dollar"},
	"EUR": {"EUR", "€", "Euro"},
	"GBP": {"GBP", "£", "British Pound"},
	"JPY": {"JPY", "¥", "Japanese Yen"},
	"AUD": {"AUD", "A$", "Australian Dollar"},
	"CAD": {"CAD", "C$", "Canadian Dollar"},
	"CHF": {"CHF", "CHF", "Swiss Franc"},
	"CNY": {"CNY", "¥", "Chinese Yuan"},
	"SEK": {"SEK", "kr", "Swedish Krona"},
	"NZD": {"NZD", "NZ$", "New Zealand Dollar"},
	"PLN": {"PLN", "zł", "Polish Zloty"},
	"CZK": {"CZK", "Kč", "Czech Koruna"},
	"HUF": {"HUF", "Ft", "Hungarian Forint"},
	"NOK": {"NOK", "kr", "Norwegian Krone"},
	"DKK": {"DKK", "kr", "Danish Krone"},
}

// LookupCurrency returns the currency for code, case-insensitively.
func LookupCurrency(code string) (Currency, bool) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Currencies returns every supported currency sorted by code.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CurrencyCodes returns the supported codes sorted.
func CurrencyCodes() []string {
	list := Currencies()
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Code
	}
	return out
}
