package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tutelearn/platform-service/internal/models"
)

// Validator wraps go-playground/validator with the platform's domain
// rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates struct tags and returns field-level errors.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationErrors(err)
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is the error type returned by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = fmt.Sprintf("%s: %s", ve.Field, ve.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ToValidationErrors converts go-playground errors into the shared
// shape.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "struct"}}
	}

	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "quiz_type":
		return "must be one of single, multiple, text"
	case "difficulty_level":
		return "must be one of beginner, intermediate, advanced"
	case "leaderboard_type":
		return "must be users or schools"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func (v *Validator) registerDomainRules() {
	// quiz type validation
	v.validate.RegisterValidation("quiz_type", func(fl validator.FieldLevel) bool {
		qType := models.QuizType(fl.Field().String())
		switch qType {
		case models.QuizSingle, models.QuizMultiple, models.QuizText:
			return true
		}
		return false
	})

	// difficulty level validation
	v.validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		level := models.DifficultyLevel(fl.Field().String())
		switch level {
		case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
			return true
		}
		return false
	})

	// leaderboard type validation
	v.validate.RegisterValidation("leaderboard_type", func(fl validator.FieldLevel) bool {
		boardType := fl.Field().String()
		return boardType == "users" || boardType == "schools"
	})
}
