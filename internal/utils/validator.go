// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("trmobile", validateTRMobile)
	validate.RegisterValidation("plaintext", validatePlainText)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Turkish mobile numbers: 05 followed by nine digits, no separators.
var trMobileRegex = regexp.MustCompile(`^05[0-9]{9}$`)

func validateTRMobile(fl validator.FieldLevel) bool {
	return trMobileRegex.MatchString(fl.Field().String())
}

// plaintext rejects markup characters; ad descriptions carry no HTML.
func validatePlainText(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), "<>")
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "trmobile":
		return "Phone number must be a local mobile number (05XXXXXXXXX)"
	case "plaintext":
		return e.Field() + " must not contain markup characters"
	default:
		return e.Field() + " is invalid"
	}
}
