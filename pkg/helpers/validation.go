package helpers

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailRegex is a deliberately simple format check. Deliverability is the
// email provider's problem; this only rejects obviously malformed input.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRegex accepts international numbers with optional +, spaces and dashes.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

// CustomValidator wraps go-playground validator with custom rules
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a new custom validator with domain rules
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// Register custom validators. The email rule replaces the baked-in one
	// so struct validation and ad-hoc checks share the same format check.
	v.RegisterValidation("email", validateEmail)
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("trademark_name", validateTrademarkName)

	return &CustomValidator{validate: v}
}

// Validate validates a struct
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// IsValidEmail reports whether the address passes the simple format check.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// validateEmail backs the email struct tag with the shared format check.
func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// validatePhone validates international phone numbers
func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	if phone == "" {
		return true // optional field; required-ness is a separate tag
	}
	return phoneRegex.MatchString(phone)
}

// validateTrademarkName rejects names that are empty after trimming or
// consist only of punctuation.
func validateTrademarkName(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r > 127 {
			return true
		}
	}
	return false
}
