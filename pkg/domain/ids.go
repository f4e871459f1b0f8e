// Package domain holds the typed identifiers shared across bounded contexts.
//
// IDs are distinct types over uuid.UUID so the compiler rejects cross-type
// assignment. Parse helpers enforce the invariant that IDs are valid, non-nil
// UUIDs at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "nameledger/pkg/domain-errors"
)

// TokenID identifies one minted ownership token. A fresh TokenID is generated
// on every successful registration; record freshness checks compare it against
// the ID stored in the name record.
type TokenID uuid.UUID

// AppID identifies a calling application for the authorization gate.
type AppID uuid.UUID

// NewTokenID mints a random token identity.
func NewTokenID() TokenID { return TokenID(uuid.New()) }

// IsNil reports whether the ID is the zero UUID.
func (id TokenID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id TokenID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id AppID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id AppID) String() string { return uuid.UUID(id).String() }

// ParseTokenID parses and validates a token ID from its string form.
func ParseTokenID(s string) (TokenID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return TokenID{}, err
	}
	return TokenID(u), nil
}

// ParseAppID parses and validates an application ID from its string form.
func ParseAppID(s string) (AppID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return AppID{}, err
	}
	return AppID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
