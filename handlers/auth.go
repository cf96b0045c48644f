package handlers

import (
	"crypto/subtle"
	"lawyer_tools/db"
	"lawyer_tools/metrics"
	"lawyer_tools/middleware"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// stateCookieName carries the OAuth state between /login and /callback
	stateCookieName = "lt_oauth_state"
	stateTTL        = 10 * time.Minute
)

// LoginHandler starts the authorization code flow
func LoginHandler(c echo.Context) error {
	if services.OAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "login is not configured")
	}

	state, err := services.GenerateState()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start login")
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   getConfig(c).IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, services.OAuth.AuthorizeURL(state))
}

// CallbackHandler completes the login: exchanges the code, stores the user
// and opens a session
func CallbackHandler(c echo.Context) error {
	if services.OAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "login is not configured")
	}

	expected := ""
	if cookie, err := c.Cookie(stateCookieName); err == nil {
		expected = cookie.Value
	}
	clearStateCookie(c)

	if providerErr := c.QueryParam("error"); providerErr != "" {
		description := c.QueryParam("error_description")
		return loginFailed(c, http.StatusUnauthorized, "provider error: "+providerErr+" "+description, description)
	}

	state := c.QueryParam("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		return loginFailed(c, http.StatusBadRequest, services.ErrStateMismatch.Error(), "invalid state")
	}

	ctx := c.Request().Context()
	tok, err := services.OAuth.Exchange(ctx, c.QueryParam("code"))
	if err != nil {
		return loginFailed(c, http.StatusUnauthorized, err.Error(), "login failed")
	}

	profile, err := services.OAuth.UserInfo(ctx, tok.AccessToken)
	if err != nil {
		claims, claimsErr := services.ParseIDTokenClaims(tok.IDToken)
		if claimsErr != nil || claims.Subject == "" {
			return loginFailed(c, http.StatusUnauthorized, err.Error(), "login failed")
		}
		log.Printf("[WARNING] User info unavailable, using ID token claims: %v", err)
		profile = claims.Profile()
	}

	user, err := services.UpsertUserFromProfile(db.DB, profile)
	if err != nil {
		metrics.Get().RecordLogin(metrics.LoginFailure)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store user")
	}
	if !user.IsActive {
		return loginFailed(c, http.StatusForbidden, "inactive user "+user.ID, "account disabled")
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		metrics.Get().RecordLogin(metrics.LoginFailure)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	middleware.SetSessionCookie(c, session.Token)
	middleware.SetIDTokenCookie(c, tok.IDToken, tok.ExpiresIn)

	services.LogAuditEvent(db.DB, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.DisplayName(),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}, services.AuditEvent{
		Action:       models.AuditActionLogin,
		ResourceType: "User",
		ResourceID:   user.ID,
		ResourceName: user.DisplayName(),
		Description:  "User logged in",
	})
	metrics.Get().RecordLogin(metrics.LoginSuccess)

	return c.Redirect(http.StatusFound, "/dashboard")
}

// loginFailed records a failed attempt and returns the error for the client
func loginFailed(c echo.Context, status int, reason, message string) error {
	if services.Monitor != nil {
		services.Monitor.TrackFailedLogin(c.RealIP(), reason)
	} else {
		services.LogSecurityEvent("LOGIN_FAILED", "", reason)
	}
	metrics.Get().RecordLogin(metrics.LoginFailure)
	if message == "" {
		message = "login failed"
	}
	return echo.NewHTTPError(status, message)
}

func clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   getConfig(c).IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// LogoutHandler ends the session and signs the user out at the provider
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			log.Printf("[WARNING] Logout: %v", err)
		}
	}

	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
			Action:       models.AuditActionLogout,
			ResourceType: "User",
			ResourceID:   user.ID,
			ResourceName: user.DisplayName(),
			Description:  "User logged out",
		})
	}

	middleware.ClearAuthCookies(c)

	if services.OAuth == nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Redirect(http.StatusFound, services.OAuth.LogoutURL(homeURL(c.Request().Host)))
}

// homeURL is the post-logout landing page; plain http only for localhost
func homeURL(host string) string {
	scheme := "https"
	if strings.Contains(host, "localhost") {
		scheme = "http"
	}
	return scheme + "://" + host + "/"
}

// MeHandler returns the signed-in user as JSON
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}
