// ABOUTME: Charm KV-backed Store with automatic cloud sync.
// ABOUTME: Writes are refused while another process holds the database lock.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// CharmDBName is the Charm KV database name.
	CharmDBName = "apex"
	// DefaultCharmHost is used unless CHARM_HOST is already set.
	DefaultCharmHost = "charm.2389.dev"
)

// ErrReadOnly is returned for writes while the database is locked elsewhere.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// CharmStore wraps a Charm KV database.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the Charm KV database and pulls remote data.
func OpenCharm() (*CharmStore, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", DefaultCharmHost); err != nil {
			return nil, err
		}
	}

	db, err := kv.OpenWithDefaultsFallback(CharmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	s := &CharmStore{kv: db, autoSync: true}
	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return s, nil
}

// IsReadOnly returns true if the database is open in read-only mode.
func (s *CharmStore) IsReadOnly() bool {
	return s.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (s *CharmStore) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

// SetAutoSync enables or disables automatic sync after writes.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (s *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (s *CharmStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Reset()
}

func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

func (s *CharmStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *CharmStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := s.kv.Set([]byte(key), value); err != nil {
		return err
	}
	s.syncIfEnabled()
	return nil
}

func (s *CharmStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := s.kv.Delete([]byte(key)); err != nil {
		return err
	}
	s.syncIfEnabled()
	return nil
}

func (s *CharmStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, err := s.kv.Keys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}
