package router

import (
	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/handler"
)

// registerSystemRoutes registers "system" endpoints that are not part of
// business logic:
//  1. Service info endpoint (unauthenticated, advertises the API path)
//  2. Health endpoint (used by uptime monitors and load balancers)
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.System.Root)
	r.GET("/status", h.System.CheckHealth)
}
