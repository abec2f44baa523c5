package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validation tags on a DTO. Returns nil when valid.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator errors into field -> message pairs
// safe to return to the client.
func GetValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out["error"] = err.Error()
		return out
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		switch fieldErr.Tag() {
		case "required":
			out[field] = "This field is required"
		case "email":
			out[field] = "Must be a valid email address"
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s characters", fieldErr.Param())
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s characters", fieldErr.Param())
		default:
			out[field] = fmt.Sprintf("Failed validation: %s", fieldErr.Tag())
		}
	}

	return out
}
