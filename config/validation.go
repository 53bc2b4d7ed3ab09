package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var md5HexRegexp = regexp.MustCompile(`^[0-9a-f]{32}$`)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("md5hex", validateMD5Hex); err != nil {
		panic(err)
	}
}

// validateMD5Hex accepts exactly 32 lowercase hex characters, no prefix
func validateMD5Hex(fl validator.FieldLevel) bool {
	return md5HexRegexp.MatchString(fl.Field().String())
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "md5hex":
		return "must be 32 lowercase hex characters"
	case "gt":
		return fmt.Sprintf("must be > %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	default:
		return fmt.Sprintf("failed on '%s'", e.Tag())
	}
}

// Validate checks the job and reports every invalid field at once
func (c *Search) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Namespace(), getValidationMessage(e)))
	}
	return fmt.Errorf("invalid search config: %s", strings.Join(messages, "; "))
}
