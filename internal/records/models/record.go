package models

import (
	"nameledger/internal/naming"
	"nameledger/pkg/domain"
)

// NameRecord is the resolution data consumers read for one fully-qualified
// name. Created on first registration, overwritten whole (never merged) on
// re-registration after expiry.
type NameRecord struct {
	// TokenID is the identity of the currently owning token. Every
	// authorization check compares a presented token against this field.
	TokenID domain.TokenID
	// Owner is the record-level owner reference. Reclaim overwrites it
	// without minting a new token or touching expiry.
	Owner naming.Address
	// Target is the optional forward resolution address.
	Target *naming.Address
}

// Clone returns an independent copy so store internals never leak.
func (r *NameRecord) Clone() *NameRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Target != nil {
		target := *r.Target
		out.Target = &target
	}
	return &out
}

// TargetEquals reports whether the record currently resolves to addr.
func (r *NameRecord) TargetEquals(addr naming.Address) bool {
	return r.Target != nil && *r.Target == addr
}
