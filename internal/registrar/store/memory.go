// Package store persists registration details keyed by (tld, label).
//
// Implementations return sentinel errors; the registrar service translates
// them into domain errors. Validate-then-mutate callbacks run under the
// store's lock so no caller observes a partially applied lease change.
package store

import (
	"context"
	"sync"

	"nameledger/internal/naming"
	"nameledger/internal/registrar/models"
	"nameledger/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded registrar store used in tests and
// single-process deployments.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]*models.RegistrationDetail
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]*models.RegistrationDetail)}
}

func key(tld string, label naming.Label) string {
	return string(label) + "." + tld
}

// Get returns a copy of the detail for (tld, label), or sentinel.ErrNotFound.
func (s *InMemory) Get(ctx context.Context, tld string, label naming.Label) (*models.RegistrationDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail, ok := s.entries[key(tld, label)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return detail.Clone(), nil
}

// Claim atomically validates the current detail (nil when absent) and, when
// validate accepts, overwrites it with fresh.
func (s *InMemory) Claim(ctx context.Context, tld string, label naming.Label, validate func(existing *models.RegistrationDetail) error, fresh *models.RegistrationDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(tld, label)
	if err := validate(s.entries[k].Clone()); err != nil {
		return err
	}
	s.entries[k] = fresh.Clone()
	return nil
}

// Execute atomically validates then mutates an existing detail, returning a
// copy of the result. Absent entries yield sentinel.ErrNotFound.
func (s *InMemory) Execute(ctx context.Context, tld string, label naming.Label, validate func(*models.RegistrationDetail) error, mutate func(*models.RegistrationDetail)) (*models.RegistrationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(tld, label)
	detail, ok := s.entries[k]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(detail.Clone()); err != nil {
		return nil, err
	}
	mutate(detail)
	return detail.Clone(), nil
}
