package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("generator.input_path", "required")

	if got := err.Error(); got != "validation: generator.input_path: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "generator.input_path", Message: "required"},
		{Field: "generator.batch_size", Message: "must be > 0"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrInputNotFound, ErrInvalidInput, ErrAnalyzerUnavailable, ErrValidation, ErrAlreadyExists}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}

func TestSentinelErrors_SurviveWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("load kanji list: %w", ErrInputNotFound)
	if !errors.Is(wrapped, ErrInputNotFound) {
		t.Fatal("wrapped error lost its sentinel")
	}
}
