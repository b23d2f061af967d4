package handler

import (
	"errors"
	"testing"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

type sampleRequest struct {
	Name   string   `json:"name"   validate:"required"`
	City   string   `json:"city"   validate:"required"`
	Rating *float64 `json:"rating" validate:"required"`
	Seats  int      `json:"seats"  validate:"gte=0"`
	Secret string   `json:"-"`
}

func TestValidator_GroupsMissingFields(t *testing.T) {
	err := NewValidator().Validate(&sampleRequest{City: "X"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	want := "validation failed: missing required fields: name, rating"
	if err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}

func TestValidator_OtherTagsFollowMissing(t *testing.T) {
	err := NewValidator().Validate(&sampleRequest{City: "X", Seats: -1})
	want := "validation failed: missing required fields: name, rating; seats failed validation (gte)"
	if err == nil || err.Error() != want {
		t.Fatalf("want %q, got %v", want, err)
	}
}

func TestValidator_ValidPayload(t *testing.T) {
	zero := 0.0
	if err := NewValidator().Validate(&sampleRequest{Name: "A", City: "X", Rating: &zero}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_NonStructIsNotValidationError(t *testing.T) {
	err := NewValidator().Validate(42)
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a plain validator error, got %v", err)
	}
}
