// Package errs defines custom error types and utilities.
//
// Every error that leaves the API uses the same envelope:
//
//	{ "status": "error", "message": "...", "errors": [ ... ] }
//
// The `errors` array carries field-level validation detail and is omitted
// when empty. Errors here play nicely with Go's standard errors package:
// handlers and middleware return them as plain `error` values and the
// global error handler serializes them at the edge.
package errs

// FieldError represents a field-level validation error for a request payload.
// Example:
//
//	{ "field": "audioFormat", "error": "is required" }
type FieldError struct {
	// Field is the JSON field name the error relates to (e.g. "language").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is designed to be
// serialized directly to JSON as the response body.
//
// Fields:
//   - HTTPStatus: the HTTP status code to respond with (not serialized).
//   - Status: always "error" in the wire format.
//   - Message: human-friendly message.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	HTTPStatus int          `json:"-"`
	Status     string       `json:"status"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It reports a match whenever the target is also a *HTTPError,
// regardless of status or message.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
//
// Useful when a base error template needs a customized message
// without mutating the original.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		HTTPStatus: e.HTTPStatus,
		Status:     e.Status,
		Message:    message,
		Errors:     e.Errors,
	}
}
