package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"nav": map[string]interface{}{
			"login": "Login",
			"tools": map[string]interface{}{
				"title": "Tools",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "Login", flat["nav.login"])
	assert.Equal(t, "Tools", flat["nav.tools.title"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{"No placeholders", "Hallo", nil, "Hallo"},
		{"Single placeholder", "Anzahl Tage: {days}", map[string]interface{}{"days": 17}, "Anzahl Tage: 17"},
		{"Missing argument", "Hallo {name}", map[string]interface{}{"other": "x"}, "Hallo {name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result string
			if tt.args == nil {
				result = format(tt.text)
			} else {
				result = format(tt.text, tt.args)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetLocale(t *testing.T) {
	assert.Equal(t, "de", GetLocale(context.Background()))
	assert.Equal(t, "en", GetLocale(WithLocale(context.Background(), "en")))
	assert.Equal(t, "de", GetLocale(WithLocale(context.Background(), "")))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "de"},
		{"en-US,en;q=0.9", "en"},
		{"de-CH,de;q=0.9,en;q=0.8", "de"},
		{"fr-CH,fr;q=0.9,en;q=0.5", "en"},
		{"ja", "de"},
		{"!!garbage!!", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("de"))
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("es"))
	assert.False(t, IsSupported(""))
}

func TestTranslateLogic(t *testing.T) {
	mutex.Lock()
	oldTrans := translations
	translations = map[string]map[string]string{
		"de": {"test.hello": "Hallo", "test.welcome": "Willkommen {name}"},
		"en": {"test.hello": "Hello"},
	}
	mutex.Unlock()

	defer func() {
		mutex.Lock()
		translations = oldTrans
		mutex.Unlock()
	}()

	assert.Equal(t, "Hello", Translate("en", "test.hello"))
	assert.Equal(t, "Hallo", Translate("de", "test.hello"))
	assert.Equal(t, "Willkommen Anna", Translate("en", "test.welcome", map[string]interface{}{"name": "Anna"}))
	assert.Equal(t, "missing.key", Translate("en", "missing.key"))
	assert.Equal(t, "Hello", T(WithLocale(context.Background(), "en"), "test.hello"))
}

func TestLoadExecution(t *testing.T) {
	require.NoError(t, Load())

	mutex.RLock()
	defer mutex.RUnlock()
	require.NotEmpty(t, translations["de"])
	require.NotEmpty(t, translations["en"])

	// Both locales carry the same keys
	for key := range translations["de"] {
		_, ok := translations["en"][key]
		assert.True(t, ok, "missing en key %s", key)
	}
}
