package validator

import (
	"errors"
	"testing"
)

type quizPayload struct {
	Type       string `validate:"required,quiz_type"`
	Difficulty string `validate:"omitempty,difficulty_level"`
}

func TestValidate_DomainRules(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		payload quizPayload
		wantErr bool
	}{
		{name: "valid single", payload: quizPayload{Type: "single"}, wantErr: false},
		{name: "valid multiple with difficulty", payload: quizPayload{Type: "multiple", Difficulty: "advanced"}, wantErr: false},
		{name: "unknown quiz type", payload: quizPayload{Type: "essay"}, wantErr: true},
		{name: "unknown difficulty", payload: quizPayload{Type: "text", Difficulty: "impossible"}, wantErr: true},
		{name: "missing type", payload: quizPayload{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.payload, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReturnsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(quizPayload{Type: "essay"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(validationErrors) != 1 {
		t.Fatalf("expected one field error, got %d", len(validationErrors))
	}
	if validationErrors[0].Rule != "quiz_type" {
		t.Errorf("rule = %q, want quiz_type", validationErrors[0].Rule)
	}
}
