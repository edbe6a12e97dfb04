package errs_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/voxproof/voice-detection-api/internal/errs"
)

func TestHTTPError_Error(t *testing.T) {
	err := errs.NewUnauthorizedError("Invalid API key")
	if err.Error() != "Invalid API key" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestHTTPError_Is(t *testing.T) {
	err := errs.NewUnauthorizedError("Invalid API key")

	if !errors.Is(err, &errs.HTTPError{}) {
		t.Fatal("expected errors.Is to match another *HTTPError")
	}
	if errors.Is(err, errors.New("plain")) {
		t.Fatal("expected errors.Is not to match a plain error")
	}
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := errs.NewNotFoundError("Route not found")
	custom := base.WithMessage("No such thing")

	if base.Message != "Route not found" {
		t.Fatalf("base error mutated: %s", base.Message)
	}
	if custom.Message != "No such thing" || custom.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected copy: %+v", custom)
	}
}

func TestConstructors_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *errs.HTTPError
		status int
	}{
		{"unauthorized", errs.NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"unprocessable", errs.NewUnprocessableEntityError("bad", nil), http.StatusUnprocessableEntity},
		{"not found", errs.NewNotFoundError("missing"), http.StatusNotFound},
		{"internal", errs.NewInternalServerError(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, tt.err.HTTPStatus)
			}
			if tt.err.Status != "error" {
				t.Fatalf("expected status field 'error', got %s", tt.err.Status)
			}
		})
	}
}

func TestHTTPError_JSONShape(t *testing.T) {
	// Without field errors, the errors key must be omitted entirely.
	plain, err := json.Marshal(errs.NewUnauthorizedError("Invalid API key"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(plain) != `{"status":"error","message":"Invalid API key"}` {
		t.Fatalf("unexpected JSON: %s", plain)
	}

	// With field errors, each entry carries field + error.
	detailed, err := json.Marshal(errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError{
		{Field: "language", Error: "is required"},
	}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"status":"error","message":"Validation failed","errors":[{"field":"language","error":"is required"}]}`
	if string(detailed) != want {
		t.Fatalf("unexpected JSON: %s", detailed)
	}
}
