package models

import "nameledger/internal/naming"

// RegistrationDetail is the lease state tracked per label inside one TLD's
// registrar. Created on first registration, mutated in place on renewal,
// overwritten on re-registration after the grace window. Never deleted:
// expired entries stay queryable for availability checks.
type RegistrationDetail struct {
	// Expiry is the lease deadline as an externally supplied clock tick.
	Expiry uint64
	// Approval is an optional address approved to act on the lease. Reset on
	// re-registration.
	Approval *naming.Address
}

// ExpiredBeyondGrace reports whether the lease has passed both its expiry and
// the grace window at the given tick. Strict inequality: at exactly
// expiry+grace the previous owner can still renew and the label is not yet
// claimable by a third party.
func (d *RegistrationDetail) ExpiredBeyondGrace(grace, now uint64) bool {
	return d.Expiry+grace < now
}

// Clone returns an independent copy so store internals never leak.
func (d *RegistrationDetail) Clone() *RegistrationDetail {
	if d == nil {
		return nil
	}
	out := *d
	if d.Approval != nil {
		approval := *d.Approval
		out.Approval = &approval
	}
	return &out
}
