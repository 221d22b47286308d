package cache

import (
	"context"
	"sync"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

type entry struct {
	value  []byte
	expiry time.Time
}

// MemoryStore is an in-process Store. Expiry is evaluated lazily on read
// against the injected clock.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   timeutil.Clock
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !s.clock.Now().Before(e.expiry) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.expiry.Equal(e.expiry) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return cloneBytes(e.value), true, nil
}

// Put stores value for ttl. A non-positive ttl removes the key.
func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ttl <= 0 {
		delete(s.entries, key)
		return nil
	}
	s.entries[key] = entry{value: cloneBytes(value), expiry: s.clock.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
