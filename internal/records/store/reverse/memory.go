// Package reverse persists the address → default-name index.
//
// At most one entry exists per address. Delete is idempotent: removing an
// absent entry is a safe no-op, which the invalidation routine relies on.
package reverse

import (
	"context"
	"sync"

	"nameledger/internal/naming"
	"nameledger/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded reverse store.
type InMemory struct {
	mu      sync.RWMutex
	entries map[naming.Address]naming.Name
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[naming.Address]naming.Name)}
}

// Get returns the default name for addr, or sentinel.ErrNotFound.
func (s *InMemory) Get(ctx context.Context, addr naming.Address) (naming.Name, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.entries[addr]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return name, nil
}

// Put inserts or overwrites addr's default name.
func (s *InMemory) Put(ctx context.Context, addr naming.Address, name naming.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[addr] = name
	return nil
}

// Delete removes addr's entry. Absent entries are a no-op.
func (s *InMemory) Delete(ctx context.Context, addr naming.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, addr)
	return nil
}
