package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names for validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validator: validate,
	}
}

// Validate validates a struct and returns validation errors. It implements
// the echo.Validator interface.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err.(validator.ValidationErrors))
	}
	return nil
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError represents a validation error with user-friendly messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	errors := make(map[string]string)

	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			errors[field] = fmt.Sprintf("%s is required", field)
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "uuid4":
			errors[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "url":
			errors[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "location_group":
			errors[field] = fmt.Sprintf("%s must be one of auth, onboarding or app", field)
		case "client_id":
			errors[field] = fmt.Sprintf("%s must contain only letters, numbers, dots, hyphens and underscores", field)
		default:
			errors[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: errors}
}

// registerCustomValidators registers custom validation rules
func registerCustomValidators(validate *validator.Validate) {
	// Location group validation: the three navigational sections
	validate.RegisterValidation("location_group", func(fl validator.FieldLevel) bool {
		group := fl.Field().String()
		return group == "auth" || group == "onboarding" || group == "app"
	})

	// Client id validation: opaque installation ids from the shells
	validate.RegisterValidation("client_id", func(fl validator.FieldLevel) bool {
		clientID := fl.Field().String()
		matched, _ := regexp.MatchString(`^[a-zA-Z0-9._-]+$`, clientID)
		return matched && len(clientID) >= 1 && len(clientID) <= 128
	})
}

// Helper validation functions

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(uuid string) bool {
	v := New()
	return v.ValidateVar(uuid, "required,uuid4") == nil
}
