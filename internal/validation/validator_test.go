// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	// Test that GetValidator returns the same instance
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// neighborsQuery mirrors the query parameter struct the API validates.
type neighborsQuery struct {
	Limit int    `validate:"omitempty,min=1,max=1000"`
	Order string `validate:"omitempty,oneof=asc desc"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input neighborsQuery
	}{
		{
			name:  "all fields set",
			input: neighborsQuery{Limit: 50, Order: "desc"},
		},
		{
			name:  "omitempty skips zero limit",
			input: neighborsQuery{Limit: 0},
		},
		{
			name:  "minimum limit",
			input: neighborsQuery{Limit: 1},
		},
		{
			name:  "maximum limit",
			input: neighborsQuery{Limit: 1000},
		},
		{
			name:  "ascending order",
			input: neighborsQuery{Order: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     neighborsQuery
		wantField string
		wantTag   string
	}{
		{
			name:      "limit too high",
			input:     neighborsQuery{Limit: 5000},
			wantField: "Limit",
			wantTag:   "max",
		},
		{
			name:      "negative limit",
			input:     neighborsQuery{Limit: -1},
			wantField: "Limit",
			wantTag:   "min",
		},
		{
			name:      "unknown order",
			input:     neighborsQuery{Limit: 10, Order: "random"},
			wantField: "Order",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 validation error, got %d: %v", len(errs), err)
			}

			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_RequiredField(t *testing.T) {
	type lookupRequest struct {
		ID string `validate:"required"`
	}

	err := ValidateStruct(&lookupRequest{})
	if err == nil {
		t.Fatal("ValidateStruct() should reject missing required field")
	}

	errs := err.Errors()
	if len(errs) != 1 || errs[0].Tag() != "required" {
		t.Fatalf("expected single required error, got %v", err)
	}
	if errs[0].Error() != "ID is required" {
		t.Errorf("Error() = %q, want %q", errs[0].Error(), "ID is required")
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := neighborsQuery{Limit: 5000}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "Limit must be at most 1000" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Limit must be at most 1000")
	}

	if apiErr.Details["field"] != "Limit" {
		t.Errorf("Details[field] = %v, want Limit", apiErr.Details["field"])
	}
	if apiErr.Details["tag"] != "max" {
		t.Errorf("Details[tag] = %v, want max", apiErr.Details["tag"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := neighborsQuery{Limit: -1, Order: "sideways"}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("expected 2 validation errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Limit") || !strings.Contains(apiErr.Message, "Order") {
		t.Errorf("combined message should name both fields, got %q", apiErr.Message)
	}

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has unexpected type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field detail entries, got %d", len(fields))
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	type rangeRequest struct {
		Count int `validate:"gte=1,lte=100"`
	}

	tests := []struct {
		name    string
		input   interface{}
		wantMsg string
	}{
		{
			name:    "gte message",
			input:   &rangeRequest{Count: 0},
			wantMsg: "Count must be greater than or equal to 1",
		},
		{
			name:    "lte message",
			input:   &rangeRequest{Count: 500},
			wantMsg: "Count must be less than or equal to 100",
		},
		{
			name:    "oneof message",
			input:   &neighborsQuery{Order: "backwards"},
			wantMsg: "Order must be one of: asc desc",
		},
		{
			name:    "numeric min message",
			input:   &neighborsQuery{Limit: -2},
			wantMsg: "Limit must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorMessages_StringLength(t *testing.T) {
	type titleFilter struct {
		Prefix string `validate:"omitempty,min=2,max=64"`
	}

	err := ValidateStruct(&titleFilter{Prefix: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := err.Errors()[0].Error()
	want := "Prefix must be at least 2 characters"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
