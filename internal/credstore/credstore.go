// Package credstore persists the bearer credential between runs. It is a
// thin pass-through to a JSON key->value file: no validation and no expiry
// logic live here.
package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// CredentialKey is the fixed entry name the bearer token is stored under.
const CredentialKey = "access_token"

type Store struct {
	fs   afero.Fs
	path string
}

// New returns a store backed by the given filesystem and file path.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewDefault returns a store on the host filesystem under the user's config
// directory.
func NewDefault() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	return New(afero.NewOsFs(), filepath.Join(dir, "resumatch", "credentials.json")), nil
}

// Get reads the value stored under key. A missing file or key is reported as
// absent, never as an error.
func (s *Store) Get(key string) (string, bool, error) {
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := entries[key]
	if !ok || value == "" {
		return "", false, nil
	}

	return value, true, nil
}

// Set writes the value under key, creating the backing file when needed.
func (s *Store) Set(key, value string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	entries[key] = value

	return s.save(entries)
}

// Delete removes the entry under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := entries[key]; !ok {
		return nil
	}

	delete(entries, key)

	return s.save(entries)
}

// Credential adapts the store to the flows' CredentialProvider. Read failures
// are treated as absence: a broken store must not break the anonymous path.
func (s *Store) Credential() (string, bool) {
	value, ok, err := s.Get(CredentialKey)
	if err != nil || !ok {
		return "", false
	}

	return value, true
}

func (s *Store) load() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return map[string]string{}, nil
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Store) save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	return afero.WriteFile(s.fs, s.path, data, 0o600)
}
