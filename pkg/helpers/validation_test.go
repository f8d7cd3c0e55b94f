package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"  spaced@example.com  ", true},
		{"", false},
		{"no-at-sign", false},
		{"user@nodot", false},
		{"user @example.com", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestCustomValidatorRules(t *testing.T) {
	type form struct {
		Email     string `validate:"required,email"`
		Phone     string `validate:"phone"`
		Trademark string `validate:"required,trademark_name"`
	}

	cv := NewCustomValidator()

	tests := []struct {
		name  string
		input form
		valid bool
	}{
		{"all valid", form{Email: "a@x.com", Phone: "+1 555 0100", Trademark: "Acme"}, true},
		{"empty phone is allowed", form{Email: "a@x.com", Trademark: "Acme"}, true},
		{"email without dot rejected", form{Email: "user@nodot", Trademark: "Acme"}, false},
		{"email with spaces rejected", form{Email: "user @x.com", Trademark: "Acme"}, false},
		{"alphabetic phone rejected", form{Email: "a@x.com", Phone: "call-me", Trademark: "Acme"}, false},
		{"punctuation-only trademark rejected", form{Email: "a@x.com", Trademark: "!!!"}, false},
		{"unicode trademark accepted", form{Email: "a@x.com", Trademark: "Café"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuildValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
	}

	cv := NewCustomValidator()
	err := cv.Validate(form{Email: "nope"})
	errs := BuildValidationErrors(err)

	assert.Contains(t, errs["email"], "valid email address")
}
