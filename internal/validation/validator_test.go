// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

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
// Flag Validation Tests
// ===================================================================================================

type flagQuery struct {
	Refresh string `query:"refresh" validate:"omitempty,flag"`
}

func TestFlagValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
		want  bool
	}{
		{"", true, false},
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", false, false},
		{"2", false, false},
		{"truee", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&flagQuery{Refresh: tt.value})
			if tt.valid && err != nil {
				t.Fatalf("ValidateStruct(%q) returned unexpected error: %v", tt.value, err)
			}
			if !tt.valid && err == nil {
				t.Fatalf("ValidateStruct(%q) should have failed", tt.value)
			}
			if tt.valid && ParseFlag(tt.value) != tt.want {
				t.Errorf("ParseFlag(%q) = %v, want %v", tt.value, !tt.want, tt.want)
			}
		})
	}
}

// ===================================================================================================
// Error Translation Tests
// ===================================================================================================

type limitQuery struct {
	Limit int    `query:"limit" validate:"min=1,max=500"`
	Order string `validate:"omitempty,oneof=asc desc"`
}

func TestValidateStruct_UsesQueryTagNames(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&limitQuery{Limit: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Field() != "limit" {
		t.Errorf("Field() = %q, want limit", errs[0].Field())
	}
	if errs[0].Tag() != "min" || errs[0].Param() != "1" {
		t.Errorf("Tag/Param = %s/%s, want min/1", errs[0].Tag(), errs[0].Param())
	}
	if errs[0].Value() != 0 {
		t.Errorf("Value() = %v, want 0", errs[0].Value())
	}
}

func TestValidateStruct_FallsBackToFieldName(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&limitQuery{Limit: 10, Order: "sideways"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := err.Errors()[0].Field(); got != "Order" {
		t.Errorf("Field() = %q, want Order", got)
	}
	if !strings.Contains(err.Error(), "asc desc") {
		t.Errorf("message %q should list allowed values", err.Error())
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&limitQuery{Limit: 1000, Order: "up"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != ErrorCode {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
	}
	if !strings.Contains(apiErr.Message, "limit") || !strings.Contains(apiErr.Message, "Order") {
		t.Errorf("Message %q should mention both fields", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message %q should join errors", apiErr.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	ve := &RequestValidationError{}
	if ve.Error() == "" {
		t.Error("empty error should still have a message")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&limitQuery{Limit: 500, Order: "desc"}); err != nil {
		t.Errorf("ValidateStruct() returned unexpected error: %v", err)
	}
}
