// Package memstore is the process-local rate store.
package memstore

import (
	"context"
	"sync"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.RateEntry
}

var _ application.RateStore = (*Store)(nil)

func New() *Store {
	return &Store{entries: make(map[string]domain.RateEntry)}
}

func (s *Store) Load(_ context.Context, base string) (domain.RateEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[base]
	if !ok {
		return domain.RateEntry{}, false, nil
	}
	e.Rates = e.Rates.Clone()
	return e, true, nil
}

// Save replaces the entry for e.Base; table and timestamp change together.
func (s *Store) Save(_ context.Context, e domain.RateEntry) error {
	e.Rates = e.Rates.Clone()
	s.mu.Lock()
	s.entries[e.Base] = e
	s.mu.Unlock()
	return nil
}
