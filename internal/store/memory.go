package store

import (
	"context"
	"sort"
	"sync"

	"mockapi/internal/mockgen"
)

// MemoryStore keeps schemas in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	schemas map[string]map[string][]mockgen.Field
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{schemas: make(map[string]map[string][]mockgen.Field)}
}

// Save stores a copy of fields.
func (s *MemoryStore) Save(_ context.Context, subject, endpoint string, fields []mockgen.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bySubject, ok := s.schemas[subject]
	if !ok {
		bySubject = make(map[string][]mockgen.Field)
		s.schemas[subject] = bySubject
	}
	bySubject[endpoint] = cloneFields(fields)
	return nil
}

// Load returns a copy of the stored fields.
func (s *MemoryStore) Load(_ context.Context, subject, endpoint string) ([]mockgen.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.schemas[subject][endpoint]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneFields(fields), nil
}

// List returns the subject's endpoint names, sorted.
func (s *MemoryStore) List(_ context.Context, subject string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.schemas[subject]))
	for name := range s.schemas[subject] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
