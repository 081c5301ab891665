package auth

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Session is the persisted login state. Cookie keeps the serialized
// Set-Cookie string so the full cookie contract survives restarts.
type Session struct {
	Token     string    `json:"token"`
	Cookie    string    `json:"cookie"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its cookie lifetime.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// NewSession wraps a freshly exchanged token.
func NewSession(token string, secure bool) Session {
	now := time.Now()
	return Session{
		Token:     token,
		Cookie:    SessionCookie(token, secure).String(),
		CreatedAt: now,
		ExpiresAt: now.Add(CookieMaxAge),
	}
}

// SaveSession writes the session file, creating parent directories. The file
// holds a bearer token, so it is user-readable only.
func SaveSession(path string, session Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession reads a previously saved session. Missing files surface as
// os.ErrNotExist so callers can fall through to the login screen.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// ClearSession removes the session file; a missing file is not an error.
func ClearSession(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
