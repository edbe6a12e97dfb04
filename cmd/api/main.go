// Command api runs the voice-detection HTTP service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxproof/voice-detection-api/internal/config"
	"github.com/voxproof/voice-detection-api/internal/handler"
	"github.com/voxproof/voice-detection-api/internal/logger"
	"github.com/voxproof/voice-detection-api/internal/middleware"
	"github.com/voxproof/voice-detection-api/internal/router"
	"github.com/voxproof/voice-detection-api/internal/server"
	"github.com/voxproof/voice-detection-api/internal/service"
	"github.com/voxproof/voice-detection-api/internal/version"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

func main() {
	// Bootstrap logger for failures before the real logger exists.
	bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize logger")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	services := service.NewServices(s)
	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(middlewares, handlers)
	s.SetupHTTPServer(e)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	log.Info().
		Str("version", version.Version).
		Str("endpoint", handler.DetectionEndpoint).
		Msg("voice detection API ready")

	// Block until a termination signal arrives, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
