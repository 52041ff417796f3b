package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore keeps collections as JSON blobs in process memory. It is used by
// tests, which inject isolated stores per case, and can back an ephemeral
// deployment where durability does not matter.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Load reads the named collection into dst. A collection that has never been
// saved loads as an empty sequence.
func (s *MemStore) Load(ctx context.Context, name string, dst any) error {
	s.mu.RLock()
	raw, ok := s.data[name]
	s.mu.RUnlock()

	if !ok {
		raw = []byte("[]")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("collection %s is corrupt: %w", name, err)
	}

	return nil
}

// Save replaces the named collection with the given records.
func (s *MemStore) Save(ctx context.Context, name string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}

	s.mu.Lock()
	s.data[name] = raw
	s.mu.Unlock()

	return nil
}
