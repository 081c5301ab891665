// Package auth implements the login exchange against the backend's JWT
// endpoint and the session cookie contract.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	loginPath = "/auth/jwt/login"
	grantType = "password"

	// CookieName is the persisted access-token cookie.
	CookieName = "accessToken"
	// CookieMaxAge is the cookie lifetime.
	CookieMaxAge = 7 * 24 * time.Hour

	// DashboardRoute is where a successful login navigates. The navigation
	// is a control-flow signal distinct from errors and must never be
	// swallowed by an error branch.
	DashboardRoute = "/dashboard"

	maxErrorBody = 2048
)

// Credentials is the login form payload.
type Credentials struct {
	Username string
	Password string
}

// ValidationError carries field-scoped messages. When validation fails, no
// network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid credentials: " + strings.Join(parts, "; ")
}

// Validate checks the credential shape against the fixed schema.
func (c Credentials) Validate() *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(c.Username) == "" {
		fields["username"] = "Username is required"
	}
	if c.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Exchange posts the form-encoded password grant and returns the bearer
// token. Non-2xx bodies are parsed as JSON {"detail": ...} when possible,
// otherwise the raw text is wrapped in a generic message; either way the
// caller gets a single human-readable error string.
func Exchange(ctx context.Context, client *http.Client, baseURL string, creds Credentials) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)
	form.Set("grant_type", grantType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("login failed: %s", serverDetail(body, resp.Status))
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("login response malformed: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("login response missing access token")
	}
	return parsed.AccessToken, nil
}

// serverDetail extracts {"detail": "..."} from an error body, falling back
// to the raw text and finally the HTTP status line.
func serverDetail(body []byte, status string) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}

// SessionCookie builds the accessToken cookie: http-only, same-site-lax,
// site-wide path, 7-day expiry, secure when served over TLS.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
