package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTurnstileFailed is returned when the captcha token is rejected
var ErrTurnstileFailed = errors.New("captcha verification failed")

var (
	turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	turnstileClient    = &http.Client{Timeout: 10 * time.Second}
)

// TurnstileResponse is the siteverify response body
type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// VerifyTurnstile checks a widget token against Cloudflare's siteverify endpoint.
// A rejected token yields an error wrapping ErrTurnstileFailed; transport
// problems are returned as they are.
func VerifyTurnstile(ctx context.Context, secretKey, token, remoteIP string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrTurnstileFailed)
	}

	form := url.Values{"secret": {secretKey}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := turnstileClient.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrTurnstileFailed, strings.Join(result.ErrorCodes, ","))
	}
	return nil
}
