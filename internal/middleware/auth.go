package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/voxproof/voice-detection-api/internal/errs"
	"github.com/voxproof/voice-detection-api/internal/server"
)

// APIKeyHeader is the request header carrying the shared-secret credential.
const APIKeyHeader = "x-api-key"

// AuthMiddleware holds the app Server so middleware can access shared deps
// like Logger and Config.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAPIKey is an Echo middleware that enforces the shared-secret
// header check.
//
// Behavior:
//  1. Read the x-api-key header (absent reads as the empty string, which
//     can never match the configured key).
//  2. Compare it against the configured credential.
//  3. On mismatch, short-circuit with a 401 before the request body is
//     ever parsed. The message never reveals the expected credential.
//  4. On match, continue to the next handler.
func (auth *AuthMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		apiKey := c.Request().Header.Get(APIKeyHeader)

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(auth.server.Config.Auth.APIKey)) != 1 {
			GetLogger(c).Warn().
				Str("function", "RequireAPIKey").
				Bool("key_present", apiKey != "").
				Msg("rejected request with missing or invalid API key")

			return errs.NewUnauthorizedError("Invalid API key")
		}

		return next(c)
	}
}
