// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/handler"
	"github.com/voxproof/voice-detection-api/internal/middleware"
)

// New builds the fully wired Echo instance.
//
// Middleware order matters:
//  1. Recover — panics anywhere below become 500s
//  2. New Relic — starts the transaction other layers attach to
//  3. RequestID — correlation ID for everything that logs
//  4. ContextEnhancer — request-scoped logger (needs the request ID)
//  5. EnhanceTracing — custom transaction attributes
//  6. RequestLogger, Secure, CORS
func New(middlewares *middleware.Middlewares, handlers *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	e.Use(middlewares.Global.Recover())
	e.Use(middlewares.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(middlewares.ContextEnhancer.EnhanceContext())
	e.Use(middlewares.Tracing.EnhanceTracing())
	e.Use(middlewares.Global.RequestLogger())
	e.Use(middlewares.Global.Secure())
	e.Use(middlewares.Global.CORS())

	registerSystemRoutes(e, handlers)
	registerAPIRoutes(e, middlewares, handlers)

	return e
}

// registerAPIRoutes registers the business endpoints.
//
// The API-key check is attached per-route, not globally: system routes stay
// unauthenticated, and the check runs before any body parsing so a bad
// credential short-circuits with 401 regardless of payload.
func registerAPIRoutes(e *echo.Echo, middlewares *middleware.Middlewares, h *handler.Handlers) {
	api := e.Group("/api")

	api.POST("/voice-detection",
		handler.Handle(h.Detection.DetectVoice, http.StatusOK),
		middlewares.Auth.RequireAPIKey,
	)
}
