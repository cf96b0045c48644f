package services

import (
	"lawyer_tools/config"
	"lawyer_tools/services/i18n"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	data := ContactEmailData{
		Name:       "Anna <script>",
		Email:      "anna@example.ch",
		Message:    "Frage zur Frist",
		ReceivedAt: "01.02.2024 10:00",
	}

	t.Run("Base template is German", func(t *testing.T) {
		html, text, err := loadTemplate("contact_request", "de", data)
		require.NoError(t, err)
		assert.Contains(t, html, "Neue Kontaktanfrage")
		assert.Contains(t, html, "Anna &lt;script&gt;")
		assert.Contains(t, text, "Name: Anna <script>")
	})

	t.Run("Localized template", func(t *testing.T) {
		html, text, err := loadTemplate("contact_request", "en", data)
		require.NoError(t, err)
		assert.Contains(t, html, "New contact request")
		assert.Contains(t, text, "Received 01.02.2024 10:00")
	})

	t.Run("Fallback to base when localized missing", func(t *testing.T) {
		html, _, err := loadTemplate("contact_request", "fr", data)
		require.NoError(t, err)
		assert.Contains(t, html, "Neue Kontaktanfrage")
	})

	t.Run("Template not found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", "de", data)
		assert.Error(t, err)
	})
}

func TestBuildContactEmail(t *testing.T) {
	require.NoError(t, i18n.Load())

	email, err := BuildContactEmail("info@codefour.ch", ContactEmailData{
		Name:    "Anna Muster",
		Email:   "anna@example.ch",
		Message: "Hallo",
	}, "de")
	require.NoError(t, err)

	assert.Equal(t, []string{"info@codefour.ch"}, email.To)
	assert.Equal(t, "anna@example.ch", email.ReplyTo)
	assert.Contains(t, email.Subject, "Anna Muster")
	assert.Contains(t, email.TextBody, "Eingegangen am")
}

func TestBuildSecurityAlertEmail(t *testing.T) {
	email, err := BuildSecurityAlertEmail("ops@example.ch", SecurityAlert{
		Timestamp: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		IP:        "192.0.2.7",
		Reason:    "Multiple failed logins detected",
	})
	require.NoError(t, err)
	assert.Equal(t, "Security Alert: Multiple failed logins detected", email.Subject)
	assert.Contains(t, email.TextBody, "192.0.2.7")
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	assert.NoError(t, SendEmail(cfg, email))
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{ResendAPIKey: "key"}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestSendEmail_UsesSender(t *testing.T) {
	orig := emailSender
	defer func() { emailSender = orig }()

	var got *Email
	emailSender = func(cfg *config.Config, email *Email) error {
		got = email
		return nil
	}

	cfg := &config.Config{ResendAPIKey: "key"}
	email := &Email{To: []string{"a@example.ch"}, Subject: "S", TextBody: "T"}
	require.NoError(t, SendEmail(cfg, email))
	assert.Same(t, email, got)
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}
