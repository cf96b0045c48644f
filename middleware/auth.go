package middleware

import (
	"context"
	"lawyer_tools/config"
	"lawyer_tools/db"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "lt_session"
	// IDTokenCookieName holds the raw ID token issued at login
	IDTokenCookieName = "ltjwt"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

const userContextKey contextKey = "current_user"

// RequireAuth is middleware that requires authentication
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := loadSession(c)
			if !ok {
				if c.Request().Header.Get("HX-Request") == "true" {
					c.Response().Header().Set("HX-Redirect", "/login")
					return c.NoContent(http.StatusUnauthorized)
				}
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			setCurrentUser(c, session)
			return next(c)
		}
	}
}

// LoadUser attaches the user of a valid session without requiring one
func LoadUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session, ok := loadSession(c); ok {
				setCurrentUser(c, session)
			}
			return next(c)
		}
	}
}

// loadSession resolves the session cookie; stale cookies are cleared
func loadSession(c echo.Context) (*models.Session, bool) {
	if s, ok := c.Get(ContextKeySession).(*models.Session); ok {
		return s, true
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" || db.DB == nil {
		return nil, false
	}

	session, err := services.ValidateSession(db.DB, cookie.Value)
	if err != nil {
		ClearAuthCookies(c)
		return nil, false
	}

	if !session.User.IsActive {
		ClearAuthCookies(c)
		return nil, false
	}

	return session, true
}

func setCurrentUser(c echo.Context, session *models.Session) {
	c.Set(ContextKeyUser, &session.User)
	c.Set(ContextKeySession, session)

	ctx := context.WithValue(c.Request().Context(), userContextKey, &session.User)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentSession retrieves the current session from context
func GetCurrentSession(c echo.Context) *models.Session {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// UserFromContext returns the signed-in user for templates, or nil
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// SetSessionCookie stores the session token for the browser
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(authCookie(c, SessionCookieName, token, int(services.DefaultSessionDuration.Seconds())))
}

// SetIDTokenCookie stores the raw ID token for as long as the provider said it is valid
func SetIDTokenCookie(c echo.Context, idToken string, maxAge int) {
	if idToken == "" {
		return
	}
	if maxAge <= 0 {
		maxAge = int(services.DefaultSessionDuration.Seconds())
	}
	c.SetCookie(authCookie(c, IDTokenCookieName, idToken, maxAge))
}

// ClearAuthCookies removes the session and ID token cookies
func ClearAuthCookies(c echo.Context) {
	c.SetCookie(authCookie(c, SessionCookieName, "", -1))
	c.SetCookie(authCookie(c, IDTokenCookieName, "", -1))
}

func authCookie(c echo.Context, name, value string, maxAge int) *http.Cookie {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.IsProduction()
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
}
