package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// NonceKey holds the per-request script nonce in both contexts
const NonceKey contextKey = "csp_nonce"

const turnstileOrigin = "https://challenges.cloudflare.com"

// GenerateNonce returns 16 random bytes, URL-safe base64
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// contentSecurityPolicy allows scripts only from self, the nonce and Turnstile.
// Frames are limited to the embedded tool origins and Turnstile.
func contentSecurityPolicy(nonce string, frameSrc []string) string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "' " + turnstileOrigin,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self' " + turnstileOrigin,
		"frame-src " + strings.Join(frameSrc, " "),
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}

// CSPNonce sets a fresh nonce per request and the matching
// Content-Security-Policy header. frameSources are the origins of the
// iframe tools.
func CSPNonce(frameSources ...string) echo.MiddlewareFunc {
	frameSrc := append(append([]string{}, frameSources...), turnstileOrigin)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				c.Logger().Errorf("Failed to generate nonce: %v", err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(string(NonceKey), nonce)
			// templates read it from the request context
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), NonceKey, nonce)))

			c.Response().Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce, frameSrc))
			return next(c)
		}
	}
}

// GetNonce returns the request's nonce, or "" outside CSPNonce
func GetNonce(ctx context.Context) string {
	if val, ok := ctx.Value(NonceKey).(string); ok {
		return val
	}
	return ""
}
