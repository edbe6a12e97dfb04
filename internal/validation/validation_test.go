package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/errs"
	"github.com/voxproof/voice-detection-api/internal/validation"
)

// samplePayload mirrors the shape of a typical request payload: required
// strings with camelCase JSON names.
type samplePayload struct {
	Language    string `json:"language" validate:"required"`
	AudioFormat string `json:"audioFormat" validate:"required"`
}

func (p *samplePayload) Validate() error {
	return validation.Struct(p)
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_Valid(t *testing.T) {
	c := newContext(`{"language":"Tamil","audioFormat":"mp3"}`)

	payload := &samplePayload{}
	if err := validation.BindAndValidate(c, payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payload.Language != "Tamil" || payload.AudioFormat != "mp3" {
		t.Fatalf("payload not bound: %+v", payload)
	}
}

func TestBindAndValidate_MissingField(t *testing.T) {
	c := newContext(`{"language":"Tamil"}`)

	err := validation.BindAndValidate(c, &samplePayload{})
	if err == nil {
		t.Fatal("expected an error")
	}

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", httpErr.HTTPStatus)
	}

	// Field names must use the JSON wire name, not the Go field name.
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "audioFormat" {
		t.Fatalf("unexpected field errors: %+v", httpErr.Errors)
	}
	if httpErr.Errors[0].Error != "is required" {
		t.Fatalf("unexpected field error message: %s", httpErr.Errors[0].Error)
	}
}

func TestBindAndValidate_WrongType(t *testing.T) {
	c := newContext(`{"language":123,"audioFormat":"mp3"}`)

	err := validation.BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", httpErr.HTTPStatus)
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(`{"language":`)

	err := validation.BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", httpErr.HTTPStatus)
	}
}
