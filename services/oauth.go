package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"lawyer_tools/config"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// ErrStateMismatch is returned when the callback state does not match the one issued at login
var ErrStateMismatch = errors.New("oauth state mismatch")

// UserProfile holds the identity claims the portal keeps about a user
type UserProfile struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// TokenResult holds the tokens returned by the code exchange
type TokenResult struct {
	AccessToken string
	IDToken     string
	// ExpiresIn is the lifetime in seconds, 0 when the provider did not say
	ExpiresIn int
}

// OAuthProvider is the authorization code flow as seen by the handlers
type OAuthProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (*TokenResult, error)
	UserInfo(ctx context.Context, accessToken string) (*UserProfile, error)
	LogoutURL(returnTo string) string
}

// OAuth is the global identity provider; nil when login is not configured
var OAuth OAuthProvider

// InitializeOAuth sets up the global provider from configuration
func InitializeOAuth(cfg config.Auth0Config) {
	if !cfg.IsConfigured() {
		OAuth = nil
		log.Println("[WARNING] OAuth provider not configured")
		return
	}
	OAuth = NewAuth0Provider(cfg, nil)
	log.Printf("OAuth provider configured (%s)", cfg.BaseURL)
}

// Auth0Provider implements OAuthProvider against an Auth0 tenant
type Auth0Provider struct {
	oauth      *oauth2.Config
	baseURL    string
	audience   string
	httpClient *http.Client
}

// NewAuth0Provider creates a provider; a nil client uses a 10s timeout client
func NewAuth0Provider(cfg config.Auth0Config, httpClient *http.Client) *Auth0Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Auth0Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.BaseURL + "/authorize",
				TokenURL: cfg.BaseURL + "/oauth/token",
			},
			Scopes: []string{"openid", "profile", "email"},
		},
		baseURL:    cfg.BaseURL,
		audience:   cfg.Audience,
		httpClient: httpClient,
	}
}

// AuthorizeURL returns the provider login URL for the given state
func (p *Auth0Provider) AuthorizeURL(state string) string {
	var opts []oauth2.AuthCodeOption
	if p.audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", p.audience))
	}
	return p.oauth.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens
func (p *Auth0Provider) Exchange(ctx context.Context, code string) (*TokenResult, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	result := &TokenResult{AccessToken: tok.AccessToken}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		result.IDToken = idToken
	}
	result.ExpiresIn = expiresIn(tok)

	return result, nil
}

// expiresIn reads expires_in from the raw response, falling back to the computed expiry
func expiresIn(tok *oauth2.Token) int {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	return int(math.Round(time.Until(tok.Expiry).Seconds()))
}

// UserInfo fetches the user's profile with an access token
func (p *Auth0Provider) UserInfo(ctx context.Context, accessToken string) (*UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse user info response: %w", err)
	}

	if profile.Subject == "" {
		return nil, fmt.Errorf("empty sub in user info response")
	}

	return &profile, nil
}

// LogoutURL returns the provider logout endpoint that sends the browser back to returnTo
func (p *Auth0Provider) LogoutURL(returnTo string) string {
	params := url.Values{
		"returnTo":  {returnTo},
		"client_id": {p.oauth.ClientID},
	}
	return p.baseURL + "/v2/logout?" + params.Encode()
}

// IDTokenClaims are the OIDC claims read from an ID token
type IDTokenClaims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Profile converts the claims into a UserProfile
func (c *IDTokenClaims) Profile() *UserProfile {
	return &UserProfile{
		Subject: c.Subject,
		Name:    c.Name,
		Email:   c.Email,
		Picture: c.Picture,
	}
}

// ParseIDTokenClaims decodes an ID token without verifying its signature.
// Only use it on tokens received directly from the token endpoint over TLS.
func ParseIDTokenClaims(raw string) (*IDTokenClaims, error) {
	if raw == "" {
		return nil, fmt.Errorf("id token is empty")
	}

	var claims IDTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token: %w", err)
	}
	return &claims, nil
}

// GenerateState creates a random 64 character hex string for the OAuth state parameter
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
