// Package service contains the business logic.
//
// It sits between the handler layer and whatever backs the detection
// verdict. It receives validated data from the handler, performs the
// detection operation, and returns the response the handler serializes.
package service

import (
	"github.com/voxproof/voice-detection-api/internal/server"
)

// Services is a container that groups all business services.
//
// Like Handlers and Middlewares, this keeps wiring clean: one object is
// passed around instead of many.
type Services struct {
	Detection *DetectionService
}

// NewServices constructs the service container.
func NewServices(s *server.Server) *Services {
	return &Services{
		Detection: NewDetectionService(s),
	}
}
