package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when input has the wrong shape.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a write collides with an existing record.
	ErrConflict = errors.New("conflict")
	// ErrNotFound is returned when a record is missing or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned when the caller could not be identified.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrConflict)
	// ErrTodoNotFound is returned for unknown todos and todos owned by someone else.
	ErrTodoNotFound = fmt.Errorf("todo %w", ErrNotFound)
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthenticated)
)

// ValidationError carries a user-facing message for a rejected input.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// reported as a generic 500 so internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusUnprocessableEntity, validationErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, "email already registered", "EMAIL_TAKEN")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, "conflict", "CONFLICT")
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, "todo not found", "NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "not authenticated", "UNAUTHENTICATED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
