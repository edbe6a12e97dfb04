package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/version"
)

// DetectionEndpoint is the path of the business endpoint, advertised by the
// info response so callers can discover it.
const DetectionEndpoint = "/api/voice-detection"

// startTime records when the process started, for uptime reporting.
var startTime = time.Now()

// InfoResponse is the body of GET /.
type InfoResponse struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Endpoint string `json:"endpoint"`
}

// SystemHandler exposes "system" endpoints that are not part of business
// logic: the unauthenticated service info route and a health route that
// uptime monitors and load balancers can poll.
type SystemHandler struct {
	Handler
}

// NewSystemHandler constructs a SystemHandler with access to shared
// dependencies.
func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// Root identifies the service and points callers at the detection endpoint.
//
// It has no preconditions and always succeeds.
func (h *SystemHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Message:  "Voice Detection API running",
		Version:  version.Version,
		Endpoint: DetectionEndpoint,
	})
}

// CheckHealth returns service health status.
//
// The service has no external dependencies to probe, so a served response
// is itself the liveness signal; the body adds environment and uptime for
// operators.
func (h *SystemHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"uptime":      time.Since(startTime).String(),
	})
}
