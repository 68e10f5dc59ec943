package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Expired entries are dropped when
// they are loaded and swept on every Save.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, id string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.entries[id] = entry{rec: rec, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil, nil
	}
	rec := e.rec
	return &rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
