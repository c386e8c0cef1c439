// Package middleware provides request validation and the JSON error
// envelope every handler responds with.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError reports a single failed validation rule on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// ErrorResponse is the envelope for every non-2xx response. Details is
// populated only for validation failures.
type ErrorResponse struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// ValidateRequest checks req against its validate tags and returns one
// FieldError per violation, or nil when the request is well formed.
func ValidateRequest(req any) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors []FieldError
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldErr.Field(),
			Message: fieldMessage(fieldErr),
			Rule:    fieldErr.Tag(),
		})
	}
	return fieldErrors
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + err.Param() + " characters"
	case "gt":
		return "must be greater than " + err.Param()
	case "gte":
		return "must be at least " + err.Param()
	default:
		return "invalid value"
	}
}

// RespondWithValidationError writes a 400 carrying per-field details.
func RespondWithValidationError(c *gin.Context, fieldErrors []FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Request validation failed",
		Details: fieldErrors,
	})
}

// RespondWithError writes the error envelope with the given status code.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Message: message})
}
