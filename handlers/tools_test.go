package handlers

import (
	"lawyer_tools/middleware"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeHandler(t *testing.T) {
	require.NoError(t, i18n.Load())

	t.Run("Anonymous", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		require.NoError(t, HomeHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Jetzt anmelden")
		for _, tool := range services.Tools {
			assert.Contains(t, rec.Body.String(), `href="`+tool.Path()+`"`)
		}
	})

	t.Run("SignedInGoesToDashboard", func(t *testing.T) {
		testDB := setupTestDB(t)
		user, _ := createTestUser(t, testDB)

		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		c.Set(middleware.ContextKeyUser, user)
		require.NoError(t, HomeHandler(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestToolHandler(t *testing.T) {
	require.NoError(t, i18n.Load())

	t.Run("Iframe", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/visiblearticle", nil)
		c.SetParamNames("tool")
		c.SetParamValues("visiblearticle")

		require.NoError(t, ToolHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `src="https://va.lawyer.tools"`)
		assert.Contains(t, rec.Body.String(), `height="1024"`)
	})

	t.Run("Native", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/datedelta", nil)
		c.SetParamNames("tool")
		c.SetParamValues("datedelta")

		require.NoError(t, ToolHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Startdatum")
	})

	t.Run("Unknown", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/nope", nil)
		c.SetParamNames("tool")
		c.SetParamValues("nope")
		assertHTTPError(t, ToolHandler(c), http.StatusNotFound)
	})
}

func TestRequireCatalogTool(t *testing.T) {
	reached := false
	next := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}

	_, c, _ := setupEcho(http.MethodGet, "/favicon.ico", nil)
	c.SetParamNames("tool")
	c.SetParamValues("favicon.ico")
	assertHTTPError(t, RequireCatalogTool()(next)(c), http.StatusNotFound)
	assert.False(t, reached)

	_, c, rec := setupEcho(http.MethodGet, "/legaldrop", nil)
	c.SetParamNames("tool")
	c.SetParamValues("legaldrop")
	require.NoError(t, RequireCatalogTool()(next)(c))
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}
