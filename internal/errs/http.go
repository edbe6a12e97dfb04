package errs

import (
	"net/http"
)

// statusError is the wire value of the Status field on every error response.
const statusError = "error"

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// The message must stay generic: it is sent to unauthenticated callers and
// must never reveal the expected credential.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		HTTPStatus: http.StatusUnauthorized,
		Status:     statusError,
		Message:    message,
	}
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// This is the shape for request payloads that fail schema validation:
//   - message: summary text (e.g. "Validation failed")
//   - errors: optional per-field detail produced by the validation layer
func NewUnprocessableEntityError(message string, errors []FieldError) *HTTPError {
	return &HTTPError{
		HTTPStatus: http.StatusUnprocessableEntity,
		Status:     statusError,
		Message:    message,
		Errors:     errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		HTTPStatus: http.StatusNotFound,
		Status:     statusError,
		Message:    message,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is a fixed generic string, not the real internal error:
// clients don't need stack traces, logs keep the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		HTTPStatus: http.StatusInternalServerError,
		Status:     statusError,
		Message:    "Internal server error",
	}
}
