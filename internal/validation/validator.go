// Package validation holds the shared struct validator and the custom tags used by the api.
package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexRGBPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
)

// FieldError describes one failed field of a validated struct.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value any    `json:"value,omitempty"`
}

// Instance returns the shared validator with the custom tags registered.
//
// Custom tags:
//   - hexrgb: six hex digits with an optional leading '#'.
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
			return hexRGBPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Struct validates data and flattens validator errors into FieldErrors.
// A nil slice means data is valid.
func Struct(data any) []FieldError {
	err := Instance().Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Value: fe.Value(),
		})
	}

	return out
}
