package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Account errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrRegNoAlreadyExists = errors.New("register number already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Project and review errors
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewStageNotFound = errors.New("review stage not found")
)

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewNotFoundError wraps a specific not-found sentinel with a message.
// The result matches both err and ErrResourceNotFound.
func NewNotFoundError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrResourceNotFound, err),
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewDuplicateError wraps a specific uniqueness sentinel with a message.
// The result matches both err and ErrConflict.
func NewDuplicateError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrConflict, err),
		Message: message,
	}
}

// NewCapacityError creates a new custom error for exhausted limits with a message
func NewCapacityError(message string) error {
	return &CustomError{
		Err:     ErrCapacityExceeded,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Message returns the user-facing message carried by a CustomError in the chain,
// or fallback if there is none.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
