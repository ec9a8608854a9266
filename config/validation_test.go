package config

import (
	"errors"
	"strings"
	"testing"

	errorskg "github.com/sanketbagad/agent-botbyte/errors"
)

func TestValidatorRequireNonEmpty(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{name: "non-empty value", value: "valid"},
		{name: "empty value", value: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().RequireNonEmpty("field", tt.value)
			if v.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tt.wantError)
			}
		})
	}
}

func TestValidatorRequireNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     int64
		wantError bool
	}{
		{name: "positive", value: 256},
		{name: "zero means provider default", value: 0},
		{name: "negative", value: -1, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().RequireNonNegative("max_tokens", tt.value)
			if v.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tt.wantError)
			}
		})
	}
}

func TestValidatorRequire(t *testing.T) {
	v := NewValidator()
	v.Require("ok", true, "unused")
	v.Require("api_key", false, "set OPENAI_API_KEY")

	errs := v.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() count = %d, want 1", len(errs))
	}
	if errs[0].Field != "api_key" || errs[0].Message != "set OPENAI_API_KEY" {
		t.Errorf("unexpected error %+v", errs[0])
	}
}

func TestValidatorValidateFloatRange(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{name: "lower bound", value: 0.0},
		{name: "inside", value: 0.7},
		{name: "upper bound", value: 2.0},
		{name: "below", value: -0.1, wantError: true},
		{name: "above", value: 2.5, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().ValidateFloatRange("temperature", tt.value, 0.0, 2.0)
			if v.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tt.wantError)
			}
		})
	}
}

func TestValidatorValidateOneOf(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{name: "allowed", value: "json"},
		{name: "not allowed", value: "xml", wantError: true},
		{name: "empty", value: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator().ValidateOneOf("format", tt.value, "text", "json")
			if v.HasErrors() != tt.wantError {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tt.wantError)
			}
		})
	}
}

func TestValidatorMultipleErrors(t *testing.T) {
	v := NewValidator()
	v.RequireNonEmpty("field1", "")
	v.RequireNonNegative("field2", -3)
	v.ValidateOneOf("field3", "c", "a", "b")

	if got := len(v.Errors()); got != 3 {
		t.Errorf("Errors() count = %d, want 3", got)
	}

	err := v.Error()
	if err == nil {
		t.Fatal("Error() = nil, want non-nil error")
	}
	if !errors.Is(err, errorskg.ErrInvalidInput) {
		t.Errorf("Error() = %v, want it to wrap ErrInvalidInput", err)
	}
	for _, field := range []string{"field1", "field2", "field3"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Error() = %q, missing %s", err, field)
		}
	}
}

func TestValidatorNoErrors(t *testing.T) {
	v := NewValidator().RequireNonEmpty("name", "botbyte")
	if err := v.Error(); err != nil {
		t.Errorf("Error() = %v, want nil", err)
	}
}
