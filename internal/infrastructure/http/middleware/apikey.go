package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// APIKeyHeader is the request header carrying the caller's provider key
	APIKeyHeader = "X-API-Key"

	// APIKeyContextKey is the echo context key holding the resolved key
	APIKeyContextKey = "api_key"
)

// ResolveAPIKey resolves the provider credential for a request: the
// X-API-Key header wins, the server-side default key is the fallback.
// Requests with neither are rejected 401 before any handler logic runs.
func ResolveAPIKey(defaultKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				apiKey = defaultKey
			}

			if apiKey == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "API key is required",
				})
			}

			c.Set(APIKeyContextKey, apiKey)
			return next(c)
		}
	}
}

// APIKeyFromContext returns the credential resolved by ResolveAPIKey
func APIKeyFromContext(c echo.Context) string {
	key, _ := c.Get(APIKeyContextKey).(string)
	return key
}
