// Package session persists the authenticated user's public profile on the
// client side. It is a convenience cache, never a source of truth: the server
// must be re-asked whenever freshness matters.
package session

import (
	"encoding/json"
	"time"

	"github.com/lari1230/fiml/internal/model"
)

// Well-known storage keys. The settings blobs are free-form, local-only
// conveniences and are never synced to the server.
const (
	keyUser           = "user"
	KeySystemSettings = "systemSettings"
	KeyUserSettings   = "userSettings"
)

// entry is the on-disk shape of the cached session. ExpiresAt is a staleness
// hint recorded at login; the cache itself never expires on its own.
type entry struct {
	User      *model.SessionUser `json:"user"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

// Store caches the session user over an injected backend.
type Store struct {
	backend Backend
}

// NewStore builds a session store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get returns the cached user, or nil when nothing (or something malformed)
// is stored. Malformed entries behave as absent, never as an error.
func (s *Store) Get() *model.SessionUser {
	b, err := s.backend.Read(keyUser)
	if err != nil {
		return nil
	}
	var e entry
	if json.Unmarshal(b, &e) != nil {
		return nil
	}
	return e.User
}

// ExpiresAt returns the recorded session expiry hint, or zero time.
func (s *Store) ExpiresAt() time.Time {
	b, err := s.backend.Read(keyUser)
	if err != nil {
		return time.Time{}
	}
	var e entry
	if json.Unmarshal(b, &e) != nil || e.ExpiresAt == nil {
		return time.Time{}
	}
	return *e.ExpiresAt
}

// Set replaces the cached user wholesale.
func (s *Store) Set(u *model.SessionUser) error {
	return s.SetWithExpiry(u, time.Time{})
}

// SetWithExpiry replaces the cached user and records an expiry hint.
func (s *Store) SetWithExpiry(u *model.SessionUser, expiresAt time.Time) error {
	e := entry{User: u}
	if !expiresAt.IsZero() {
		e.ExpiresAt = &expiresAt
	}
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return s.backend.Write(keyUser, b)
}

// Clear removes the cached user entirely.
func (s *Store) Clear() error {
	return s.backend.Delete(keyUser)
}

// Present reports whether a usable cached user exists.
func (s *Store) Present() bool {
	return s.Get() != nil
}

// Settings returns the raw settings blob stored under key, or nil when absent.
func (s *Store) Settings(key string) json.RawMessage {
	b, err := s.backend.Read(key)
	if err != nil {
		return nil
	}
	if !json.Valid(b) {
		return nil
	}
	return b
}

// SaveSettings stores a raw settings blob under key.
func (s *Store) SaveSettings(key string, blob json.RawMessage) error {
	return s.backend.Write(key, blob)
}
