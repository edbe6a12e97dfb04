package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voxproof/voice-detection-api/internal/config"
	"github.com/voxproof/voice-detection-api/internal/errs"
	"github.com/voxproof/voice-detection-api/internal/logger"
	"github.com/voxproof/voice-detection-api/internal/middleware"
	"github.com/voxproof/voice-detection-api/internal/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Auth:          config.AuthConfig{APIKey: "sekret"},
		Observability: config.DefaultObservabilityConfig(),
	}

	log := zerolog.Nop()
	s, err := server.New(cfg, &log, &logger.LoggerService{})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return s
}

func invokeAuth(t *testing.T, apiKey string) error {
	t.Helper()

	auth := middleware.NewAuthMiddleware(newTestServer(t))

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/voice-detection", http.NoBody)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	err := auth.RequireAPIKey(next)(c)
	if err == nil && !called {
		t.Fatal("middleware neither failed nor called next")
	}
	if err != nil && called {
		t.Fatal("next was called despite auth failure")
	}
	return err
}

func TestRequireAPIKey_Valid(t *testing.T) {
	if err := invokeAuth(t, "sekret"); err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
}

func TestRequireAPIKey_Missing(t *testing.T) {
	err := invokeAuth(t, "")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.HTTPStatus)
	}
}

func TestRequireAPIKey_Wrong(t *testing.T) {
	err := invokeAuth(t, "not-the-key")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.HTTPStatus)
	}
	if httpErr.Message == "sekret" {
		t.Fatal("error message must not reveal the expected credential")
	}
}
