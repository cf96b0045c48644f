package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth0Resolve(t *testing.T) {
	t.Run("DomainWins", func(t *testing.T) {
		a := Auth0Config{Domain: "tenant.eu.auth0.com", BaseURL: "https://ignored.example"}
		a.Resolve()
		assert.Equal(t, "https://tenant.eu.auth0.com", a.BaseURL)
		assert.Equal(t, "https://tenant.eu.auth0.com/userinfo", a.Audience)
	})

	t.Run("BaseURLFallback", func(t *testing.T) {
		a := Auth0Config{BaseURL: "https://login.example.com/"}
		a.Resolve()
		assert.Equal(t, "https://login.example.com", a.BaseURL)
		assert.Equal(t, "https://login.example.com/userinfo", a.Audience)
	})

	t.Run("ExplicitAudienceKept", func(t *testing.T) {
		a := Auth0Config{Domain: "tenant.auth0.com", Audience: "https://api.lawyer.tools"}
		a.Resolve()
		assert.Equal(t, "https://api.lawyer.tools", a.Audience)
	})

	t.Run("NothingConfigured", func(t *testing.T) {
		a := Auth0Config{}
		a.Resolve()
		assert.Empty(t, a.Audience)
		assert.False(t, a.IsConfigured())
	})
}

func TestLoadAuth0FromEnv(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "tenant.auth0.com")
	t.Setenv("AUTH0_CLIENT_ID", "client-123")
	t.Setenv("AUTH0_CLIENT_SECRET", "shh")
	t.Setenv("AUTH0_AUDIENCE", "")

	a, err := LoadAuth0()
	require.NoError(t, err)
	assert.Equal(t, "client-123", a.ClientID)
	assert.Equal(t, "shh", a.ClientSecret)
	assert.Equal(t, "https://tenant.auth0.com", a.BaseURL)
	assert.Equal(t, "https://tenant.auth0.com/userinfo", a.Audience)
	assert.Equal(t, "http://localhost:3000/callback", a.CallbackURL)
	assert.True(t, a.IsConfigured())
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"", true, true},
		{"yes", false, true},
		{"ON", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
	}

	for _, tt := range tests {
		t.Setenv("LT_TEST_BOOL", tt.value)
		assert.Equal(t, tt.expected, getEnvBool("LT_TEST_BOOL", tt.def), "value %q", tt.value)
	}
}

func TestGenerateSecureSecret(t *testing.T) {
	secret := GenerateSecureSecret()
	raw, err := base64.StdEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotEqual(t, secret, GenerateSecureSecret())
}

func TestValidateSessionSecretDevelopment(t *testing.T) {
	assert.NoError(t, ValidateSessionSecret("change-me", "development"))
	assert.NoError(t, ValidateSessionSecret("short", "development"))
}
