// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Apply development defaults so the service boots with zero configuration.
//   - Validate required values so the app fails fast on bad config.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read. No explicit call needed.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix scopes which environment variables belong to this service.
//
// Nested keys use a double underscore as the section delimiter, so
// VOICEAPI_SERVER__READ_TIMEOUT maps to server.read_timeout which koanf
// resolves to Config.Server.ReadTimeout.
const envPrefix = "VOICEAPI_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator
// after defaults have been applied.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as integer seconds and converted to time.Duration
// where the http.Server is constructed.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// AuthConfig stores the shared-secret credential for the detection endpoint.
//
// APIKey is compared verbatim against the x-api-key request header. It is a
// single process-wide value with an init-only lifecycle: read once here,
// never mutated afterwards. There is no rotation, expiry, or per-caller
// identity.
type AuthConfig struct {
	APIKey string `koanf:"api_key" validate:"required"`
}

// Load reads configuration from environment variables, unmarshals it into
// Config, applies defaults, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix VOICEAPI_
//   - Converts env keys into koanf keys ("__" becomes the "." nesting delimiter)
//   - Unmarshals into Config
//   - Fills development defaults for anything unset
//   - Validates required config blocks/fields
func Load() (*Config, error) {
	k := koanf.New(".")

	// env.Provider parameters:
	//  1) prefix: only env vars starting with VOICEAPI_ are read
	//  2) delimiter: "." is how koanf represents nesting
	//  3) key-mapping func: VOICEAPI_AUTH__API_KEY -> auth.api_key
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, err
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, err
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, err
	}

	// Force service name and environment so telemetry sees consistent
	// naming regardless of what the user set.
	mainConfig.Observability.ServiceName = "voice-detection-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// applyDefaults fills in development defaults for any value not supplied
// through the environment.
//
// The API key default mirrors the original development credential so local
// connectivity testing works out of the box. Production deployments are
// expected to override VOICEAPI_AUTH__API_KEY.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Auth.APIKey == "" {
		c.Auth.APIKey = "123456"
	}
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}
