package handler

import (
	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// This keeps router setup clean: one object is passed around instead of
// many. Handlers represent the HTTP layer: parse input, validate, call
// services, and return responses.
type Handlers struct {
	Detection *DetectionHandler // Detection serves the voice-detection endpoint.
	System    *SystemHandler    // System serves the service info and health endpoints.
}

// NewHandlers constructs the handler container.
//
// Parameters:
//   - s: application container (logger/config) needed by handlers
//   - services: business layer container
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Detection: NewDetectionHandler(s, services.Detection),
		System:    NewSystemHandler(s),
	}
}
