package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps client state in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memoryKey(clientID, key string) string {
	return clientID + "\x00" + key
}

// Get returns the value for key or ErrNotFound
func (s *MemoryStore) Get(_ context.Context, clientID, key string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[memoryKey(clientID, key)]
	s.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)) {
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores value under key
func (s *MemoryStore) Set(_ context.Context, clientID, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey(clientID, key)] = entry
	return nil
}

// Delete removes keys; missing keys are ignored
func (s *MemoryStore) Delete(_ context.Context, clientID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, memoryKey(clientID, key))
	}
	return nil
}

// PurgeExpired drops expired entries and returns how many were removed
func (s *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var purged int64
	for k, entry := range s.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(s.entries, k)
			purged++
		}
	}
	return purged, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
