// Package cas implements the content addressable rule key store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RuleKeyStore using a flat JSON file keyed by rule
// key digest.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.CacheEntry
}

// NewStore creates a rule key store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read rule key store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal rule key store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal rule key store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for rule key store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write rule key store")
	}

	return nil
}

// Get retrieves the entry for a rule key. Returns nil, nil on a miss: a miss
// is a normal build outcome, not an error.
func (s *Store) Get(key domain.RuleKey) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[key.String()]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry under its rule key.
func (s *Store) Put(entry domain.CacheEntry) error {
	if entry.RuleKey.IsZero() {
		return zerr.With(domain.ErrMissingField, "field", "rule_key")
	}

	s.mu.Lock()
	s.cache[entry.RuleKey.String()] = entry
	s.mu.Unlock()

	return s.save()
}
