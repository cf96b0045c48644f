package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// MinSessionSecretLength is the minimum required length for session secret in production
	MinSessionSecretLength = 32
)

// Auth0Config holds the OAuth/OIDC provider settings
type Auth0Config struct {
	CallbackURL  string `env:"AUTH0_CALLBACK_URL" envDefault:"http://localhost:3000/callback"`
	ClientID     string `env:"AUTH0_CLIENT_ID"`
	ClientSecret string `env:"AUTH0_CLIENT_SECRET"`
	Domain       string `env:"AUTH0_DOMAIN"`
	BaseURL      string `env:"AUTH0_BASE_URL"`
	Audience     string `env:"AUTH0_AUDIENCE"`
}

// Resolve derives BaseURL from Domain and defaults Audience to the userinfo endpoint
func (a *Auth0Config) Resolve() {
	if a.Domain != "" {
		a.BaseURL = "https://" + a.Domain
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.Audience == "" && a.BaseURL != "" {
		a.Audience = a.BaseURL + "/userinfo"
	}
}

// IsConfigured reports whether login can be offered at all
func (a Auth0Config) IsConfigured() bool {
	return a.BaseURL != "" && a.ClientID != ""
}

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	StaticDir   string
	AppURL      string
	// Auth
	Auth0             Auth0Config
	SessionSecret     string
	DataEncryptionKey string
	// Turso (libsql)
	TursoDatabaseURL string
	TursoAuthToken   string
	// Email (Resend)
	ResendAPIKey     string
	EmailFrom        string
	EmailFromName    string
	EmailTestMode    bool // When true, emails are logged to console instead of sent
	ContactRecipient string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Tools
	SpeedLimitsKey string
	ChromePath     string
}

// IsProduction reports whether cookies must be marked Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	sessionSecret := getEnv("SESSION_SECRET", "")

	// Validate session secret - this will fatal in production if invalid
	ValidateSessionSecret(sessionSecret, environment)

	// In development, generate a secure secret if none provided
	if sessionSecret == "" && environment != "production" {
		sessionSecret = GenerateSecureSecret()
		log.Println("[INFO] Generated temporary session secret for development. Set SESSION_SECRET env var for persistence.")
	}

	auth0, err := LoadAuth0()
	if err != nil {
		log.Fatalf("[CRITICAL] Invalid Auth0 configuration: %v", err)
	}
	if !auth0.IsConfigured() {
		log.Println("[WARNING] AUTH0_DOMAIN/AUTH0_BASE_URL or AUTH0_CLIENT_ID missing, login will be unavailable")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "3000"),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		Environment:        environment,
		StaticDir:          getEnv("STATIC_DIR", "public"),
		AppURL:             strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		Auth0:              auth0,
		SessionSecret:      sessionSecret,
		DataEncryptionKey:  os.Getenv("DATA_ENCRYPTION_KEY"),
		TursoDatabaseURL:   getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:     os.Getenv("TURSO_AUTH_TOKEN"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@lawyer.tools"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Lawyer Tools"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		ContactRecipient:   getEnv("CONTACT_RECIPIENT", "info@codefour.ch"),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: os.Getenv("TURNSTILE_SECRET_KEY"),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		SpeedLimitsKey:     getEnv("SPEED_LIMITS_KEY", "data/speed_limits.xlsx"),
		ChromePath:         getEnv("CHROME_PATH", ""),
	}
}

// LoadAuth0 parses the AUTH0_* variables and resolves derived values
func LoadAuth0() (Auth0Config, error) {
	var auth0 Auth0Config
	if err := env.Parse(&auth0); err != nil {
		return Auth0Config{}, err
	}
	auth0.Resolve()
	return auth0, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ValidateSessionSecret validates the session secret meets security requirements
// In production, it must be at least 32 bytes and not a known insecure default
func ValidateSessionSecret(secret string, environment string) error {
	insecureDefaults := []string{
		"dev-secret-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				log.Fatal("[CRITICAL] SESSION_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			log.Printf("[WARNING] SESSION_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" {
		if len(secret) < MinSessionSecretLength {
			log.Fatalf("[CRITICAL] SESSION_SECRET must be at least %d characters in production (current: %d). Generate with: openssl rand -base64 32", MinSessionSecretLength, len(secret))
		}
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Printf("[WARNING] Failed to generate secure secret: %v", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
