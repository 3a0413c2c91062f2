// Package identity persists named player values with expiration, the quiz
// counterpart of a session cookie.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UsernameKey is the record name under which the player name is stored.
const UsernameKey = "username"

// UsernameDays is the lifetime of a stored player name.
const UsernameDays = 7

// Store keeps named values in a single JSON file.
type Store struct {
	path string
	now  func() time.Time
}

type record struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewStore builds a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Set writes a value that expires after the given number of days. Negative
// days produce an already-expired record. Expired records are pruned on write.
func (s *Store) Set(name, value string, days int) error {
	if name == "" {
		return fmt.Errorf("record name is required")
	}
	records, err := s.load()
	if err != nil {
		return err
	}
	s.prune(records)
	records[name] = record{
		Value:     value,
		ExpiresAt: s.now().Add(time.Duration(days) * 24 * time.Hour),
	}
	return s.save(records)
}

// Get returns the stored value and whether it is present. Expired records
// read as absent.
func (s *Store) Get(name string) (string, bool, error) {
	records, err := s.load()
	if err != nil {
		return "", false, err
	}
	rec, ok := records[name]
	if !ok || !s.now().Before(rec.ExpiresAt) {
		return "", false, nil
	}
	return rec.Value, true, nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(name string) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := records[name]; !ok {
		return nil
	}
	delete(records, name)
	return s.save(records)
}

func (s *Store) load() (map[string]record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]record{}, nil
		}
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}
	records := map[string]record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode identity file: %w", err)
	}
	return records, nil
}

func (s *Store) save(records map[string]record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create identity dir: %w", err)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode identity file: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "identity-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp identity file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close identity file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	return nil
}

func (s *Store) prune(records map[string]record) {
	now := s.now()
	for name, rec := range records {
		if !now.Before(rec.ExpiresAt) {
			delete(records, name)
		}
	}
}
