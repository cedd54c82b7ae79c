// Package auth stores the bearer token the client sends to the API.
//
// The token comes from TODOLIST_TOKEN when set, otherwise from
// ~/.todolist/credentials.json (directory 0700, file 0600).
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvToken overrides the stored credentials.
const EnvToken = "TODOLIST_TOKEN"

const (
	credDirName  = ".todolist"
	credFileName = "credentials.json"
)

// Token sources.
const (
	SourceEnv  = "env"
	SourceFile = "file"
)

// ErrNoToken means neither the environment nor the credentials file hold a token.
var ErrNoToken = errors.New("not logged in")

// TokenInfo is a token and where it came from.
type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the token has a known expiry before now.
func (ti *TokenInfo) Expired(now time.Time) bool {
	return ti.ExpiresAt != nil && ti.ExpiresAt.Before(now)
}

// CredentialsPath returns the credentials file location.
func CredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, credDirName, credFileName), nil
}

// GetToken returns the active token, or ErrNoToken.
func GetToken() (*TokenInfo, error) {
	if env := stripBearer(os.Getenv(EnvToken)); env != "" {
		ti := &TokenInfo{Token: env, Source: SourceEnv}
		if c, err := Inspect(ti.Token); err == nil {
			ti.ExpiresAt = c.ExpiresAt
		}
		return ti, nil
	}

	p, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	if ti.Token == "" {
		return nil, ErrNoToken
	}
	ti.Source = SourceFile
	return &ti, nil
}

// SetToken saves token to the credentials file. The expiry is taken from
// the token itself when it is a JWT.
func SetToken(token string) (*TokenInfo, error) {
	token = stripBearer(token)
	if token == "" {
		return nil, errors.New("empty token")
	}
	p, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	ti := &TokenInfo{Token: token, Source: SourceFile, CreatedAt: time.Now().UTC()}
	if c, err := Inspect(token); err == nil {
		ti.ExpiresAt = c.ExpiresAt
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return ti, nil
}

// DeleteToken removes the credentials file. A missing file is not an error.
func DeleteToken() error {
	p, err := CredentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// stripBearer drops a leading "Bearer" scheme word, bare or followed by a
// token.
func stripBearer(s string) string {
	s = strings.TrimSpace(s)
	if f := strings.Fields(s); len(f) > 0 && strings.EqualFold(f[0], "bearer") {
		return strings.TrimSpace(s[len(f[0]):])
	}
	return s
}
