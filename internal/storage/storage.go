// Package storage persists small pieces of client state under the state
// directory: the session cookie, the local profile draft, and the
// applied-job record. It is the local analog of browser cookie and
// localStorage APIs, one JSON file per key.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store reads and writes state files under a single directory.
type Store struct {
	dir string
}

// New creates the state directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: state directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: failed to create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *Store) Dir() string { return s.dir }

// cookieRecord is the on-disk shape of one named cookie.
type cookieRecord struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SetCookie stores a named value with an expiry, overwriting any
// previous value.
func (s *Store) SetCookie(name, value string, ttl time.Duration) error {
	record := cookieRecord{Value: value, ExpiresAt: time.Now().Add(ttl)}
	return s.SaveJSON(name+".cookie", record)
}

// Cookie returns the stored value for name, or "" when the cookie is
// missing or past its expiry.
func (s *Store) Cookie(name string) (string, error) {
	var record cookieRecord
	found, err := s.LoadJSON(name+".cookie", &record)
	if err != nil || !found {
		return "", err
	}
	if time.Now().After(record.ExpiresAt) {
		return "", nil
	}
	return record.Value, nil
}

// DeleteCookie removes a named cookie. Deleting a missing cookie is a no-op.
func (s *Store) DeleteCookie(name string) error {
	return s.Delete(name + ".cookie")
}

// SaveJSON marshals v and writes it under key.
func (s *Store) SaveJSON(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: failed to encode %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("storage: failed to write %s: %w", key, err)
	}
	return nil
}

// LoadJSON reads the value under key into v. Returns false with a nil
// error when the key does not exist.
func (s *Store) LoadJSON(key string, v any) (bool, error) {
	data, found, err := s.LoadRaw(key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("storage: failed to decode %s: %w", key, err)
	}
	return true, nil
}

// LoadRaw reads the raw bytes under key, for callers that validate
// before decoding. Returns false with a nil error when absent.
func (s *Store) LoadRaw(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Delete removes the value under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
