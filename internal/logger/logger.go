// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *zerolog* for logging and optionally integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/voxproof/voice-detection-api/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is disabled (no license key configured) the service still
// exists but holds a nil application; every consumer is expected to check
// GetApplication() for nil and degrade to a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when APM is
// disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.nrApp
}

// Shutdown flushes buffered telemetry. Safe to call when APM is disabled.
func (ls *LoggerService) Shutdown() {
	if ls.nrApp != nil {
		// Zero wait: telemetry loss on shutdown is acceptable, a hung
		// process is not.
		ls.nrApp.Shutdown(0)
	}
}

// New builds the application logger and the observability service from config.
//
// Initialization performed:
//   - New Relic application, only when a license key is configured
//   - zerolog writer: JSON to stdout (optionally wrapped for New Relic log
//     forwarding) or a console writer for local development
//   - global log level from observability config
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	loggerService := &LoggerService{}
	if obs.NewRelic.LicenseKey != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		}
		if obs.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
		}

		nrApp, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize New Relic: %w", err)
		}
		loggerService.nrApp = nrApp
	}

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	var out io.Writer = os.Stdout
	switch {
	case obs.Logging.Format == "console":
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	case loggerService.nrApp != nil && obs.NewRelic.AppLogForwardingEnabled:
		// zerologWriter decorates each JSON line with linking metadata and
		// forwards it to New Relic alongside writing to stdout.
		out = zerologWriter.New(os.Stdout, loggerService.nrApp)
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, loggerService, nil
}

// WithTraceContext returns a child logger carrying the transaction's trace
// and span IDs so log lines can be correlated with distributed traces.
//
// If txn is nil the logger is returned unchanged.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}

	md := txn.GetTraceMetadata()
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
