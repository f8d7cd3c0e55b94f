package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorResponse represents the validation error response format
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// fieldMessage maps a validator tag to a human readable message.
func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
	case "phone":
		return fmt.Sprintf("The %s field must be a valid phone number", field)
	case "trademark_name":
		return fmt.Sprintf("The %s field must be a valid trademark name", field)
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}

// BuildValidationErrors converts validator errors to a field->message map.
func BuildValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = err.Error()
		return errors
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		errors[field] = fieldMessage(field, fe)
	}

	return errors
}

// WriteValidationErrorResponse writes a 400 response for validator errors.
func WriteValidationErrorResponse(w http.ResponseWriter, err error) {
	resp := ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  BuildValidationErrors(err),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(resp)
}

// WriteValidationErrorResponseFromString writes a 400 response for a single
// validation message that did not come from the struct validator.
func WriteValidationErrorResponseFromString(w http.ResponseWriter, message string) {
	resp := ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  map[string]string{"request": message},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(resp)
}
