// Package session owns the durable login state of the CLI: the
// access/refresh token pair persisted between invocations, and the
// auth lifecycle that maintains it.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store holds the token pair for the current session. With a path it
// persists the pair as a JSON file readable only by the owner; with an
// empty path it is memory-only. A missing, unreadable or corrupt file
// reads as no session, never an error.
//
// Store satisfies client.TokenSource, so it can be plugged straight
// into the API client to authenticate requests.
type Store struct {
	mu      sync.Mutex
	path    string
	access  string
	refresh string
}

type sessionFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewStore loads the session at path, starting empty when nothing
// usable is there. An empty path keeps tokens in memory only.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

func (s *Store) load() {
	if s.path == "" {
		return
	}
	raw, err := os.ReadFile(s.path) //nolint:gosec // session path from trusted CLI flag
	if err != nil {
		return
	}
	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return
	}
	s.access = f.AccessToken
	s.refresh = f.RefreshToken
}

// Token returns the stored access token, reporting ok=false when the
// session is anonymous.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.access != ""
}

// RefreshToken returns the stored refresh token, if any.
func (s *Store) RefreshToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh, s.refresh != ""
}

// Set replaces the stored pair and persists it.
func (s *Store) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return s.save()
}

// Clear drops the pair and deletes the session file. Clearing an
// already-empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// save writes the pair through a temp file and rename so a crash
// mid-write never leaves a truncated session behind. Caller holds the
// lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	raw, err := json.Marshal(sessionFile{AccessToken: s.access, RefreshToken: s.refresh})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
