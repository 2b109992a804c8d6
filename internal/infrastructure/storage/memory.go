package storage

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process KeyValueStore. Values live until the process
// exits, or until ttl passes when ttl is positive.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a store; a positive ttl sweeps expired entries every
// minute.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{items: gocache.New(ttl, time.Minute)}
}

func scopedKey(scope, key string) string {
	return scope + ":" + key
}

func (s *MemoryStore) Get(_ context.Context, scope, key string) (string, bool, error) {
	v, found := s.items.Get(scopedKey(scope, key))
	if !found {
		return "", false, nil
	}
	value, ok := v.(string)
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, scope, key, value string) error {
	s.items.Set(scopedKey(scope, key), value, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, scope, key string) error {
	s.items.Delete(scopedKey(scope, key))
	return nil
}

// DeleteExpired removes expired entries ahead of the janitor.
func (s *MemoryStore) DeleteExpired() {
	s.items.DeleteExpired()
}

// Len counts stored entries, including expired ones the janitor has not
// removed yet.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

// Close drops every entry.
func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}
