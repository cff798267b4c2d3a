package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deposito626-api/internal/cache"
)

// Namespace keys the persisted state, mirroring the storefront's
// original local-storage key.
const Namespace = "deposito626-cart"

// Persister saves and loads the full cart state. Implementations decide
// the medium; the store calls Save after every mutation.
type Persister interface {
	Save(state State) error
	// Load returns nil state (no error) when nothing was persisted yet.
	Load() (*State, error)
}

// FileStore persists the state as a JSON file. Writes go through a temp
// file and rename so a crash mid-write never corrupts the saved cart.
type FileStore struct {
	path string
}

// NewFileStore creates a file persister at dir/<Namespace>.json.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart state dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, Namespace+".json")}, nil
}

// Save writes the state atomically.
func (f *FileStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace cart state: %w", err)
	}
	return nil
}

// Load reads the persisted state, or nil when the file does not exist.
func (f *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart state: %w", err)
	}
	return &state, nil
}

// CacheStore persists the state into a cache.Cache (memory or Redis).
// Entries are written with a long TTL; a cache miss on Load is simply an
// empty cart.
type CacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheStore creates a cache-backed persister.
func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &CacheStore{cache: c, ttl: ttl}
}

// Save stores the encoded state under the namespace key.
func (c *CacheStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart state: %w", err)
	}
	return c.cache.Set(context.Background(), Namespace, data, c.ttl)
}

// Load fetches the persisted state; a cache miss yields nil state.
func (c *CacheStore) Load() (*State, error) {
	data, err := c.cache.Get(context.Background(), Namespace)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart state: %w", err)
	}
	return &state, nil
}

var (
	_ Persister = (*FileStore)(nil)
	_ Persister = (*CacheStore)(nil)
)
