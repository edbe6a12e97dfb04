package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/voxproof/voice-detection-api/internal/middleware"
	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/validation"
)

// Handler is the base handler type that holds shared application
// dependencies.
//
// It is embedded by concrete handlers (DetectionHandler, SystemHandler)
// so they can access shared resources via *server.Server (config, logger).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
//
// It returns the struct by value: the struct only contains a pointer
// field, so copying it is cheap and still points to the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Handle wraps a typed endpoint function into an echo.HandlerFunc,
// centralizing the per-request pipeline:
//
//   - request binding + validation
//   - structured logging with the request-scoped logger
//   - New Relic attributes and error reporting
//   - timing (validation duration, handler duration, total duration)
//   - JSON response writing with the given status
//
// Req is the payload struct type; a fresh *Req is allocated per request so
// concurrent requests never share state. *Req must implement
// validation.Validatable.
//
// Usage:
//
//	e.POST("/x", handler.Handle(h.doX, http.StatusOK))
func Handle[Req any, PReq interface {
	*Req
	validation.Validatable
}, Res any](
	handlerFn func(c echo.Context, req PReq) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		method := c.Request().Method
		path := c.Path()

		// The New Relic transaction is set by the nrecho middleware
		// (nil when APM is disabled).
		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", path)
		}

		// The context-enhanced logger already carries correlation fields
		// (request_id, trace ids).
		log := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("method", method).
			Str("path", path).
			Logger()

		log.Info().Msg("handling request")

		// ---------------- Validation phase -------------------------------
		validationStart := time.Now()

		req := PReq(new(Req))
		if err := validation.BindAndValidate(c, req); err != nil {
			validationDuration := time.Since(validationStart)

			log.Warn().
				Err(err).
				Dur("validation_duration", validationDuration).
				Msg("request validation failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("validation.status", "failed")
				txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
			}

			// Let the global error handler format the response.
			return err
		}

		validationDuration := time.Since(validationStart)
		if txn != nil {
			txn.AddAttribute("validation.status", "success")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		// ---------------- Handler execution phase ------------------------
		handlerStart := time.Now()
		result, err := handlerFn(c, req)
		handlerDuration := time.Since(handlerStart)

		if err != nil {
			totalDuration := time.Since(start)

			log.Error().
				Err(err).
				Dur("handler_duration", handlerDuration).
				Dur("total_duration", totalDuration).
				Msg("handler execution failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("handler.status", "error")
				txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
				txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
			}
			return err
		}

		totalDuration := time.Since(start)

		if txn != nil {
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}

		log.Info().
			Dur("handler_duration", handlerDuration).
			Dur("validation_duration", validationDuration).
			Dur("total_duration", totalDuration).
			Msg("request completed successfully")

		return c.JSON(status, result)
	}
}
