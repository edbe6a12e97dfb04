package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voxproof/voice-detection-api/internal/config"
	"github.com/voxproof/voice-detection-api/internal/handler"
	"github.com/voxproof/voice-detection-api/internal/logger"
	"github.com/voxproof/voice-detection-api/internal/middleware"
	"github.com/voxproof/voice-detection-api/internal/router"
	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/service"
)

const testAPIKey = "123456"

// newTestRouter wires the full application (middleware included) against a
// test config, so requests exercise the same pipeline production sees.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8000",
			ReadTimeout:        10,
			WriteTimeout:       10,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Auth:          config.AuthConfig{APIKey: testAPIKey},
		Observability: config.DefaultObservabilityConfig(),
	}

	log := zerolog.Nop()
	s, err := server.New(cfg, &log, &logger.LoggerService{})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	services := service.NewServices(s)
	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	return router.New(middlewares, handlers)
}

// postDetection sends a POST to the detection endpoint with the given API
// key (empty string means no header) and raw JSON body.
func postDetection(e *echo.Echo, apiKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/voice-detection", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

const validBody = `{"language":"Tamil","audioFormat":"mp3","audioBase64":"SUQzBAAAAAAAI1RTU0UAAAAPAAADTGF2ZjU2LjM2LjEwMAAAAAAA"}`

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

func TestDetectVoice_MissingAPIKey(t *testing.T) {
	e := newTestRouter(t)

	rr := postDetection(e, "", validBody)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["status"] != "error" {
		t.Fatalf("expected status error, got %v", body["status"])
	}
	if msg, _ := body["message"].(string); strings.Contains(msg, testAPIKey) {
		t.Fatal("error message must not reveal the expected credential")
	}
}

func TestDetectVoice_WrongAPIKey(t *testing.T) {
	e := newTestRouter(t)

	wrong := postDetection(e, "000000", validBody)
	missing := postDetection(e, "", validBody)

	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", wrong.Code)
	}

	// A wrong key must be indistinguishable from a missing key.
	if !bytes.Equal(wrong.Body.Bytes(), missing.Body.Bytes()) {
		t.Fatalf("wrong-key body %q differs from missing-key body %q", wrong.Body.String(), missing.Body.String())
	}
}

func TestDetectVoice_AuthPrecedesValidation(t *testing.T) {
	e := newTestRouter(t)

	// Invalid body and bad credential: the credential check must win.
	rr := postDetection(e, "000000", `{"language":"Tamil"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before body validation, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestDetectVoice_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing language",
			body:  `{"audioFormat":"mp3","audioBase64":"AAAA"}`,
			field: "language",
		},
		{
			name:  "missing audioFormat",
			body:  `{"language":"Tamil","audioBase64":"AAAA"}`,
			field: "audioFormat",
		},
		{
			name:  "missing audioBase64",
			body:  `{"language":"Tamil","audioFormat":"mp3"}`,
			field: "audioBase64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(t)

			rr := postDetection(e, testAPIKey, tt.body)

			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rr.Code)
			}

			var body struct {
				Status string `json:"status"`
				Errors []struct {
					Field string `json:"field"`
					Error string `json:"error"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if body.Status != "error" {
				t.Fatalf("expected status error, got %s", body.Status)
			}

			found := false
			for _, fe := range body.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a field error for %q, got %+v", tt.field, body.Errors)
			}
		})
	}
}

func TestDetectVoice_WrongFieldType(t *testing.T) {
	e := newTestRouter(t)

	rr := postDetection(e, testAPIKey, `{"language":123,"audioFormat":"mp3","audioBase64":"AAAA"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestDetectVoice_MalformedJSON(t *testing.T) {
	e := newTestRouter(t)

	rr := postDetection(e, testAPIKey, `{"language":`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// Success path
// ---------------------------------------------------------------------------

func TestDetectVoice_Success(t *testing.T) {
	e := newTestRouter(t)

	rr := postDetection(e, testAPIKey, `{"language":"English","audioFormat":"wav","audioBase64":"AAAA"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body service.DetectionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if body.Status != "success" {
		t.Fatalf("expected status success, got %s", body.Status)
	}
	if body.Language != "English" {
		t.Fatalf("expected language echoed back, got %s", body.Language)
	}
	if body.Classification != "HUMAN" {
		t.Fatalf("expected classification HUMAN, got %s", body.Classification)
	}
	if body.ConfidenceScore != 0.99 {
		t.Fatalf("expected confidence 0.99, got %v", body.ConfidenceScore)
	}
}

func TestDetectVoice_ConnectivityScenario(t *testing.T) {
	e := newTestRouter(t)

	rr := postDetection(e, testAPIKey, validBody)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	want := map[string]interface{}{
		"status":          "success",
		"language":        "Tamil",
		"classification":  "HUMAN",
		"confidenceScore": 0.99,
		"explanation":     "This is a dummy response for connectivity testing.",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("field %q: expected %v, got %v", k, v, got[k])
		}
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected extra fields in response: %v", got)
	}
}

func TestDetectVoice_Idempotent(t *testing.T) {
	e := newTestRouter(t)

	first := postDetection(e, testAPIKey, validBody)
	second := postDetection(e, testAPIKey, validBody)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", first.Code, second.Code)
	}

	// No hidden state accumulates between requests.
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatalf("success bodies differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestDetectVoice_OpaqueAudioPayload(t *testing.T) {
	e := newTestRouter(t)

	// audioBase64 is never decoded, so invalid Base64 is not an error.
	rr := postDetection(e, testAPIKey, `{"language":"Hindi","audioFormat":"mp3","audioBase64":"not base64 at all!!!"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for opaque audio payload, got %d", rr.Code)
	}
}
