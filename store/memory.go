package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-session/core"
)

// MemoryTokenStore is the default process-local idToken cache. Safe for
// concurrent use.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(context.Context) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, token string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// MemoryMarkerStore keeps provider session markers in process memory.
// Useful for tests and single-process hosts without a persistence
// backend.
type MemoryMarkerStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryMarkerStore() *MemoryMarkerStore {
	return &MemoryMarkerStore{entries: make(map[string]string)}
}

func (s *MemoryMarkerStore) Set(_ context.Context, key string, value string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]string)
	}
	s.entries[key] = value
	return nil
}

func (s *MemoryMarkerStore) Get(_ context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *MemoryMarkerStore) Keys(context.Context) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryMarkerStore) Delete(_ context.Context, key string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryMarkerStore) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	if s == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

var (
	_ core.TokenStore  = (*MemoryTokenStore)(nil)
	_ core.MarkerStore = (*MemoryMarkerStore)(nil)
)
