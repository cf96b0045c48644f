package middleware

import (
	"lawyer_tools/config"
	"lawyer_tools/db"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = testDB.AutoMigrate(&models.User{}, &models.Session{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Set the global DB variable used by middleware
	db.DB = testDB
	t.Cleanup(func() { db.DB = nil })
	return testDB
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "success")
}

func TestRequireAuth(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	user := models.User{Subject: "auth0|1", Name: "Test User", Email: "test@example.com", IsActive: true}
	require.NoError(t, testDB.Create(&user).Error)

	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	t.Run("ValidSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, GetCurrentUser(c).ID)
		assert.Equal(t, session.ID, GetCurrentSession(c).ID)
		assert.Equal(t, user.ID, UserFromContext(c.Request().Context()).ID)
	})

	t.Run("NoCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("HTMXRequest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/datedelta", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("InvalidSessionClearsCookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "invalid-token"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		cleared := findCookie(rec, SessionCookieName)
		require.NotNil(t, cleared)
		assert.Equal(t, -1, cleared.MaxAge)
		assert.NotNil(t, findCookie(rec, IDTokenCookieName))
	})

	t.Run("InactiveUser", func(t *testing.T) {
		inactive := models.User{Subject: "auth0|2", Name: "Inactive", IsActive: true}
		require.NoError(t, testDB.Create(&inactive).Error)
		require.NoError(t, testDB.Model(&inactive).Update("is_active", false).Error)
		s, err := services.CreateSession(testDB, inactive.ID, "", "")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: s.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err = RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("ExpiredSession", func(t *testing.T) {
		s, err := services.CreateSession(testDB, user.ID, "", "")
		require.NoError(t, err)
		testDB.Model(s).Update("expires_at", time.Now().Add(-time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: s.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err = RequireAuth()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}

func TestLoadUser(t *testing.T) {
	testDB := setupTestDB(t)
	e := echo.New()

	user := models.User{Subject: "auth0|3", Name: "Visitor", IsActive: true}
	require.NoError(t, testDB.Create(&user).Error)
	session, err := services.CreateSession(testDB, user.ID, "", "")
	require.NoError(t, err)

	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := LoadUser()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, GetCurrentUser(c))
		assert.Nil(t, UserFromContext(c.Request().Context()))
	})

	t.Run("SignedIn", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := LoadUser()(okHandler)(c)
		assert.NoError(t, err)
		require.NotNil(t, GetCurrentUser(c))
		assert.Equal(t, "Visitor", GetCurrentUser(c).Name)
	})
}

func TestAuthCookies(t *testing.T) {
	e := echo.New()

	t.Run("ProductionCookiesAreSecure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/callback", nil), rec)
		c.Set("config", &config.Config{Environment: "production"})

		SetSessionCookie(c, "tok")
		SetIDTokenCookie(c, "id.token.value", 3600)

		session := findCookie(rec, SessionCookieName)
		require.NotNil(t, session)
		assert.True(t, session.Secure)
		assert.True(t, session.HttpOnly)
		assert.Equal(t, int(services.DefaultSessionDuration.Seconds()), session.MaxAge)

		idToken := findCookie(rec, IDTokenCookieName)
		require.NotNil(t, idToken)
		assert.Equal(t, "id.token.value", idToken.Value)
		assert.Equal(t, 3600, idToken.MaxAge)
	})

	t.Run("EmptyIDTokenIsSkipped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/callback", nil), rec)

		SetIDTokenCookie(c, "", 3600)
		assert.Nil(t, findCookie(rec, IDTokenCookieName))
	})

	t.Run("ClearAuthCookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

		ClearAuthCookies(c)
		for _, name := range []string{SessionCookieName, IDTokenCookieName} {
			cookie := findCookie(rec, name)
			require.NotNil(t, cookie, name)
			assert.Equal(t, -1, cookie.MaxAge)
			assert.False(t, cookie.Secure)
		}
	})
}
