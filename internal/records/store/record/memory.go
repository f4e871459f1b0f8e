// Package record persists name records keyed by fully-qualified name.
package record

import (
	"context"
	"sync"

	"nameledger/internal/naming"
	"nameledger/internal/records/models"
	"nameledger/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded record store.
type InMemory struct {
	mu      sync.RWMutex
	records map[naming.Name]*models.NameRecord
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[naming.Name]*models.NameRecord)}
}

// Get returns a copy of the record for name, or sentinel.ErrNotFound.
func (s *InMemory) Get(ctx context.Context, name naming.Name) (*models.NameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[name]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

// Put inserts or overwrites the record for name.
func (s *InMemory) Put(ctx context.Context, name naming.Name, record *models.NameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[name] = record.Clone()
	return nil
}
