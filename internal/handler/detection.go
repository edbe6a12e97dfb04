package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/service"
	"github.com/voxproof/voice-detection-api/internal/validation"
)

// DetectVoiceRequest is the payload of POST /api/voice-detection.
//
// All three fields are required strings. AudioBase64 is expected to carry
// Base64-encoded audio but is treated as an opaque string: it is never
// decoded or validated as Base64, so invalid encoding is not an error
// condition here.
type DetectVoiceRequest struct {
	Language    string `json:"language" validate:"required"`
	AudioFormat string `json:"audioFormat" validate:"required"`
	AudioBase64 string `json:"audioBase64" validate:"required"`
}

// Validate applies the declared validation rules.
func (r *DetectVoiceRequest) Validate() error {
	return validation.Struct(r)
}

// DetectionHandler serves the voice-detection endpoint.
type DetectionHandler struct {
	Handler
	detection *service.DetectionService
}

// NewDetectionHandler constructs a DetectionHandler.
func NewDetectionHandler(s *server.Server, detection *service.DetectionService) *DetectionHandler {
	return &DetectionHandler{
		Handler:   NewHandler(s),
		detection: detection,
	}
}

// DetectVoice handles a classification request.
//
// Authentication and payload validation have already run by the time this
// executes (auth in middleware, validation in the Handle pipeline), so the
// remaining work is producing the verdict with the request's language
// echoed back verbatim.
func (h *DetectionHandler) DetectVoice(c echo.Context, req *DetectVoiceRequest) (*service.DetectionResult, error) {
	return h.detection.Detect(c.Request().Context(), req.Language), nil
}
