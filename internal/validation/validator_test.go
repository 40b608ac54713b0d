// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/tomtom215/lapiprice/internal/catalog"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type predictRequest struct {
	Spec     catalog.Specification `json:"specification"`
	Currency string                `json:"currency" validate:"omitempty,currency"`
	Rate     float64               `json:"rate" validate:"finite,gte=0"`
	Limit    int                   `json:"limit" validate:"min=0,max=100"`
	Family   string                `json:"family" validate:"omitempty,family"`
	Column   string                `json:"column" validate:"omitempty,facet"`
}

func validSpec() catalog.Specification {
	return catalog.Specification{
		Manufacturer: "Dell", Product: "XPS 13", DeviceClass: "Ultrabook",
		ScreenSize: 13.3, ScreenResolution: "1920x1080", CPU: "Intel Core i7",
		RAM: 16, GPU: "Intel Iris", OperatingSystem: "Windows 10", Weight: 1.2,
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input predictRequest
	}{
		{"minimal", predictRequest{Spec: validSpec()}},
		{"currency upper", predictRequest{Spec: validSpec(), Currency: "USD", Rate: 1.08}},
		{"currency lower", predictRequest{Spec: validSpec(), Currency: "gbp", Rate: 0.86}},
		{"family", predictRequest{Spec: validSpec(), Family: "random_forest"}},
		{"facet", predictRequest{Spec: validSpec(), Column: "manufacturer"}},
		{"limit bound", predictRequest{Spec: validSpec(), Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*predictRequest)
		wantField string
		wantTag   string
	}{
		{"unknown currency", func(r *predictRequest) { r.Currency = "XYZ" }, "currency", "currency"},
		{"nan rate", func(r *predictRequest) { r.Rate = math.NaN() }, "rate", "finite"},
		{"negative rate", func(r *predictRequest) { r.Rate = -1 }, "rate", "gte"},
		{"limit too high", func(r *predictRequest) { r.Limit = 101 }, "limit", "max"},
		{"unknown family", func(r *predictRequest) { r.Family = "svm" }, "family", "family"},
		{"numeric facet", func(r *predictRequest) { r.Column = "ram" }, "column", "facet"},
		{"missing manufacturer", func(r *predictRequest) { r.Spec.Manufacturer = "" }, "manufacturer", "required"},
		{"negative ram", func(r *predictRequest) { r.Spec.RAM = -8 }, "ram", "gte"},
		{"negative weight", func(r *predictRequest) { r.Spec.Weight = -0.5 }, "weight", "gte"},
		{"screen too large", func(r *predictRequest) { r.Spec.ScreenSize = 120 }, "screen_size", "lte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := predictRequest{Spec: validSpec()}
			tt.mutate(&req)

			err := ValidateStruct(&req)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			found := false
			for _, e := range err {
				if e.Field == tt.wantField && e.Tag == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, err)
			}
		})
	}
}

func TestErrorsDetails_Single(t *testing.T) {
	req := predictRequest{Spec: validSpec(), Currency: "XYZ"}

	errs := ValidateStruct(&req)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if got := errs.Error(); got != "currency must be a supported currency code" {
		t.Errorf("Error() = %q", got)
	}
	details := errs.Details()
	if details["field"] != "currency" || details["tag"] != "currency" {
		t.Errorf("Details() = %v, want field and tag currency", details)
	}
}

func TestErrorsDetails_Multiple(t *testing.T) {
	req := predictRequest{Spec: validSpec(), Currency: "XYZ", Limit: 500}
	req.Spec.RAM = -1

	errs := ValidateStruct(&req)
	if len(errs) != 3 {
		t.Fatalf("len(errs) = %d, want 3", len(errs))
	}

	fields, ok := errs.Details()["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("Details()[fields] = %v, want 3 entries", errs.Details()["fields"])
	}
	msg := errs.Error()
	for _, want := range []string{"currency:", "limit:", "ram:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() %q does not mention %s", msg, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*predictRequest)
		message string
	}{
		{"required", func(r *predictRequest) { r.Spec.Product = "" }, "product is required"},
		{"gte", func(r *predictRequest) { r.Spec.RAM = -1 }, "ram must be greater than or equal to 0"},
		{"max", func(r *predictRequest) { r.Limit = 1000 }, "limit must be at most 100"},
		{"max string", func(r *predictRequest) { r.Spec.Manufacturer = strings.Repeat("x", 65) }, "manufacturer must be at most 64 characters"},
		{"finite", func(r *predictRequest) { r.Rate = math.Inf(1) }, "rate must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := predictRequest{Spec: validSpec()}
			tt.mutate(&req)
			err := ValidateStruct(&req)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if got := err[0].Message; got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
		})
	}
}
