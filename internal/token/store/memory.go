// Package store persists minted tokens by identity.
//
// Tokens are never destroyed: stale ones stay resolvable so their holders get
// a proper token_expired rejection instead of a lookup failure.
package store

import (
	"context"
	"sync"

	"nameledger/internal/token"
	"nameledger/pkg/domain"
	"nameledger/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded token store.
type InMemory struct {
	mu     sync.RWMutex
	tokens map[domain.TokenID]*token.Token
}

func NewInMemory() *InMemory {
	return &InMemory{tokens: make(map[domain.TokenID]*token.Token)}
}

// Get returns a copy of the token, or sentinel.ErrNotFound.
func (s *InMemory) Get(ctx context.Context, id domain.TokenID) (*token.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tok, ok := s.tokens[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *tok
	return &copied, nil
}

// Put stores a freshly minted token.
func (s *InMemory) Put(ctx context.Context, tok *token.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *tok
	s.tokens[tok.ID] = &copied
	return nil
}

// Execute mutates the stored token under the lock, returning a copy of the
// result. Used for transfers and display-field updates.
func (s *InMemory) Execute(ctx context.Context, id domain.TokenID, mutate func(*token.Token)) (*token.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	mutate(tok)
	copied := *tok
	return &copied, nil
}
