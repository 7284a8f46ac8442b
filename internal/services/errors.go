package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses in handleServiceError.
var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAttemptNotFound = errors.New("attempt not found")

	ErrMissingField       = errors.New("missing required field")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidLeaderboard = errors.New("leaderboard type must be users or schools")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures into one error.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) *ValidationErrors {
	return &ValidationErrors{
		Errors: []ValidationError{{Field: field, Message: message}},
	}
}

// MissingFieldError keeps the field name for the response while still
// matching ErrMissingField with errors.Is.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

func NewMissingFieldError(field string) error {
	return &MissingFieldError{Field: field}
}
