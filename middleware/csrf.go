package middleware

import (
	"context"
	"lawyer_tools/config"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CSRFFieldName is the form field carrying the token
const CSRFFieldName = "_csrf"

const csrfContextKey contextKey = "csrf_token"

// CSRF protects form posts and exposes the token to templates through the request context
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	protect := echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:" + CSRFFieldName + ",header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return protect(func(c echo.Context) error {
			ctx := context.WithValue(c.Request().Context(), csrfContextKey, GetCSRFToken(c))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		})
	}
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get("csrf")
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}

// CSRFToken returns the token stored by CSRF for use in templates
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey).(string)
	return token
}
