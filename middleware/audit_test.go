package middleware

import (
	"lawyer_tools/models"
	"lawyer_tools/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditContextMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		wantID   string
		wantName string
	}{
		{"Anonymous", nil, "", ""},
		{"Named", &models.User{ID: "u-1", Name: "Simon Schnetzler"}, "u-1", "Simon Schnetzler"},
		{"EmailOnly", &models.User{ID: "u-2", Email: "gregor@example.ch"}, "u-2", "gregor@example.ch"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/datedelta", nil)
			req.Header.Set("User-Agent", "audit-agent")
			req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
			c := e.NewContext(req, httptest.NewRecorder())
			if tt.user != nil {
				c.Set(ContextKeyUser, tt.user)
			}

			var seen services.AuditContext
			require.NoError(t, AuditContext()(func(c echo.Context) error {
				seen = GetAuditContext(c)
				return nil
			})(c))

			assert.Equal(t, tt.wantID, seen.UserID)
			assert.Equal(t, tt.wantName, seen.UserName)
			assert.Equal(t, "audit-agent", seen.UserAgent)
			assert.Equal(t, "203.0.113.7", seen.IPAddress)
		})
	}
}

func TestGetAuditContextWithoutMiddleware(t *testing.T) {
	e := echo.New()

	c := e.NewContext(nil, nil)
	assert.Equal(t, services.AuditContext{}, GetAuditContext(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/callback", nil), httptest.NewRecorder())
	c.Set(ContextKeyUser, &models.User{ID: "u-3", Name: "Christoph Russ"})
	got := GetAuditContext(c)
	assert.Equal(t, "u-3", got.UserID)
	assert.Equal(t, "192.0.2.1", got.IPAddress)
}
