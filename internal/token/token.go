// Package token defines the transferable ownership capability minted on every
// successful registration.
//
// A token is bound to one fully-qualified name at mint time and never rebinds.
// It is not destroyed when it goes stale: re-registration mints a new token
// and re-keys the name record, which makes every earlier token for that name
// fail freshness checks without touching the token objects themselves.
// Holding a stale token is harmless but useless for authorization.
package token

import (
	"nameledger/internal/naming"
	"nameledger/pkg/domain"
)

// Token is the ownership capability for one name at a specific lease.
type Token struct {
	// ID is compared against the name record's stored token ID; the match is
	// what makes this token "current".
	ID domain.TokenID
	// BoundName is fixed at mint time for the life of the token.
	BoundName naming.Name
	// Holder is the address the token was most recently transferred to. The
	// authenticated update protocol cross-checks signed messages against it.
	Holder naming.Address
	// ImageURL is the off-chain display field updated through the verifier.
	ImageURL string
	// ExpiryAtMint snapshots the lease deadline when the token was minted.
	// Authorization never trusts it; guards re-read the live registrar.
	ExpiryAtMint uint64
}

// Mint creates the token for a fresh registration.
func Mint(name naming.Name, holder naming.Address, expiryAtMint uint64) *Token {
	return &Token{
		ID:           domain.NewTokenID(),
		BoundName:    name,
		Holder:       holder,
		ExpiryAtMint: expiryAtMint,
	}
}

// Transfer hands the token to a new holder. Freshness is unaffected: a stale
// token stays stale no matter how often it changes hands.
func (t *Token) Transfer(to naming.Address) {
	t.Holder = to
}
