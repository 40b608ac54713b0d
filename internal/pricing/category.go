// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package pricing

import (
	"strings"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

// Category is a market segment label for a priced laptop.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories, checked in this order.
var (
	CategoryGaming     = Category{Name: "Gaming", Description: "Designed for high-performance gaming"}
	CategoryPremium    = Category{Name: "Premium", Description: "High-end performance and build quality"}
	CategoryBudget     = Category{Name: "Budget", Description: "Affordable with basic functionality"}
	CategoryMainstream = Category{Name: "Mainstream", Description: "Good balance of performance and price"}
)

// Price thresholds in the base currency.
const (
	premiumAbove = 1500
	budgetBelow  = 700
)

// Categorize labels spec at price. Price is in the base currency.
//
//nolint:gocritic // spec passed by value for immutability
func Categorize(spec catalog.Specification, price float64) Category {
	class := strings.ToLower(spec.DeviceClass)
	product := strings.ToLower(spec.Product)

	switch {
	case strings.Contains(class, "gaming") || strings.Contains(product, "gaming"):
		return CategoryGaming
	case price > premiumAbove || strings.Contains(product, "premium"):
		return CategoryPremium
	case price < budgetBelow:
		return CategoryBudget
	default:
		return CategoryMainstream
	}
}
