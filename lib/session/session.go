// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session stores the operator's console credential and local UI
// preferences on disk.
//
// The session file is the sole authorization artifact: the console treats its
// absence, or the backend rejecting its token, as "not logged in" and routes
// to the login view. The file lives under the user's config directory and is
// written with owner-only permissions since it contains an access token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotLoggedIn is returned by Load when no session file exists. Callers use
// this to distinguish "log in first" from a genuinely broken session file.
var ErrNotLoggedIn = errors.New("no session found: log in first")

// Session holds the operator's authentication state. Stored at the path
// returned by FilePath and loaded automatically at console startup.
type Session struct {
	// Token is the bearer token issued by the backend at login.
	Token string `json:"access_token"`

	// LoginAt records when the token was issued, for display only. The
	// backend is the authority on expiry.
	LoginAt time.Time `json:"login_at"`
}

// Preferences holds UI-local notification preferences. They are persisted
// next to the session file and never sent to the backend.
type Preferences struct {
	// EmailAlerts mirrors the settings-view toggle.
	EmailAlerts bool `json:"email_alerts"`

	// WebhookURL is a user-supplied webhook endpoint, stored verbatim.
	WebhookURL string `json:"webhook_url"`
}

// FilePath returns the path to the session file. Checks the
// WEBXES_SESSION_FILE environment variable first, then falls back to
// ~/.config/webxes/session.json (honoring XDG_CONFIG_HOME).
func FilePath() string {
	if envPath := os.Getenv("WEBXES_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback for systems with no home directory.
			return filepath.Join("/tmp", "webxes-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "webxes", "session.json")
}

// preferencesPath returns the preferences file path, kept alongside the
// session file so WEBXES_SESSION_FILE relocates both.
func preferencesPath() string {
	return filepath.Join(filepath.Dir(FilePath()), "preferences.json")
}

// Load reads the session from the well-known path. Returns ErrNotLoggedIn
// (wrapped) when no session file exists.
func Load() (*Session, error) {
	path := FilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotLoggedIn)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if stored.Token == "" {
		return nil, fmt.Errorf("session file %s has no access_token", path)
	}
	return &stored, nil
}

// Save writes the session to the well-known path. Creates the parent
// directory with mode 0700 if it doesn't exist. The file is written with
// mode 0600 since it contains an access token.
func Save(stored *Session) error {
	path := FilePath()
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// Clear removes the session file. Clearing an already-absent session is not
// an error, so logout and 401 handling can both call it unconditionally.
func Clear() error {
	err := os.Remove(FilePath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// LoadPreferences reads the stored preferences. A missing file yields the
// zero Preferences, not an error.
func LoadPreferences() (*Preferences, error) {
	data, err := os.ReadFile(preferencesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Preferences{}, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	var preferences Preferences
	if err := json.Unmarshal(data, &preferences); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	return &preferences, nil
}

// SavePreferences writes the preferences next to the session file.
func SavePreferences(preferences *Preferences) error {
	data, err := json.MarshalIndent(preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	data = append(data, '\n')

	path := preferencesPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// Store is the credential interface consumed by the API client and the push
// channel. It serializes access so the 401 handler, the push channel's
// connect loop, and the UI can share one store.
type Store struct {
	mutex   sync.RWMutex
	current *Session
}

// NewStore returns a Store primed with the given session, which may be nil
// when the operator has not logged in yet.
func NewStore(current *Session) *Store {
	return &Store{current: current}
}

// Token returns the stored bearer token, or "" when logged out.
func (store *Store) Token() string {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	if store.current == nil {
		return ""
	}
	return store.current.Token
}

// SetToken records a freshly issued token with the current time and
// persists it. Convenience wrapper over Set for the login flow.
func (store *Store) SetToken(token string) error {
	return store.Set(&Session{Token: token, LoginAt: time.Now()})
}

// Set records a new session and persists it.
func (store *Store) Set(stored *Session) error {
	store.mutex.Lock()
	store.current = stored
	store.mutex.Unlock()
	return Save(stored)
}

// Clear drops the in-memory session and removes the file. Idempotent.
func (store *Store) Clear() error {
	store.mutex.Lock()
	store.current = nil
	store.mutex.Unlock()
	return Clear()
}
