package dto

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeCapacityExceeded      ErrorCode = "RES_004"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field" example:"staffId"`
	Message string `json:"message" example:"staffId is required"`
}

// ErrorResponse represents the standard error response structure.
// Error is always a human readable string.
type ErrorResponse struct {
	Success   bool        `json:"success" example:"false"`
	Error     string      `json:"error" example:"Invalid stage value"`
	Code      ErrorCode   `json:"code" example:"VAL_001"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithDetails adds additional details to the error
func (e *ErrorResponse) WithDetails(details interface{}) *ErrorResponse {
	e.Details = details
	return e
}

// HandleValidationError converts a binding error into an error response.
// The first failing field becomes the message; all of them are listed in details.
func HandleValidationError(err error) *ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewErrorResponse(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: formatValidationError(fe)})
	}
	return NewErrorResponse(ErrorCodeValidationFailed, fields[0].Message).WithDetails(fields)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "notblank":
		return e.Field() + " cannot be blank"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
