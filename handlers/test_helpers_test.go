package handlers

import (
	"context"
	"io"
	"lawyer_tools/config"
	"lawyer_tools/db"
	"lawyer_tools/models"
	"lawyer_tools/services"
	"lawyer_tools/services/i18n"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique shared memory name isolates tests while letting async audit writes see the tables
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.Exec("PRAGMA journal_mode=WAL;").Error)
	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.ContactRequest{},
	))

	require.NoError(t, i18n.Load())

	db.DB = testDB
	services.InitSecurityMonitor()
	t.Cleanup(func() { db.DB = nil })

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// createTestUser stores an active user with a live session and returns both
func createTestUser(t *testing.T, testDB *gorm.DB) (*models.User, *models.Session) {
	t.Helper()
	user, err := services.UpsertUserFromProfile(testDB, &services.UserProfile{
		Subject: "auth0|" + uuid.NewString(),
		Name:    "Gregor Münch",
		Email:   "gregor@example.ch",
	})
	require.NoError(t, err)

	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)
	return user, session
}

// waitForAuditLog polls for the asynchronous audit entry of action
func waitForAuditLog(t *testing.T, testDB *gorm.DB, action models.AuditAction) models.AuditLog {
	t.Helper()
	var entry models.AuditLog
	require.Eventually(t, func() bool {
		return testDB.Where("action = ?", action).First(&entry).Error == nil
	}, 2*time.Second, 20*time.Millisecond)
	return entry
}

// useTestKey installs a throwaway encryption key for the duration of the test
func useTestKey(t *testing.T) {
	t.Helper()
	key, err := services.DeriveEncryptionKey("handler-tests")
	require.NoError(t, err)
	services.SetEncryptionKey(key)
}

type mockOAuth struct {
	mock.Mock
}

func (m *mockOAuth) AuthorizeURL(state string) string {
	return "https://tenant.auth0.com/authorize?state=" + state
}

func (m *mockOAuth) Exchange(ctx context.Context, code string) (*services.TokenResult, error) {
	args := m.Called(ctx, code)
	tok, _ := args.Get(0).(*services.TokenResult)
	return tok, args.Error(1)
}

func (m *mockOAuth) UserInfo(ctx context.Context, accessToken string) (*services.UserProfile, error) {
	args := m.Called(ctx, accessToken)
	profile, _ := args.Get(0).(*services.UserProfile)
	return profile, args.Error(1)
}

func (m *mockOAuth) LogoutURL(returnTo string) string {
	return "https://tenant.auth0.com/v2/logout?returnTo=" + returnTo
}

// useOAuth swaps the global provider for the test
func useOAuth(t *testing.T, provider services.OAuthProvider) {
	t.Helper()
	previous := services.OAuth
	services.OAuth = provider
	t.Cleanup(func() { services.OAuth = previous })
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*services.StorageResult, error) {
	args := m.Called(ctx, reader, key, contentType, size)
	result, _ := args.Get(0).(*services.StorageResult)
	return result, args.Error(1)
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	reader, _ := args.Get(0).(io.ReadCloser)
	return reader, args.String(1), args.Error(2)
}

func (m *mockStorage) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

// useStorage swaps the global storage for the test
func useStorage(t *testing.T, storage services.StorageProvider) {
	t.Helper()
	previous := services.Storage
	services.Storage = storage
	t.Cleanup(func() { services.Storage = previous })
}
