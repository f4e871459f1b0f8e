package naming

import (
	"encoding/hex"

	dErrors "nameledger/pkg/domain-errors"
)

// AddressLength is the byte width of a canonical address. The wire encoding is
// exactly 2*AddressLength lowercase hex characters, zero-padded, no "0x".
const AddressLength = 32

// Address is a canonical account address. The zero value means "unset".
type Address [AddressLength]byte

// ParseAddress decodes the canonical fixed-width hex form. A field shorter or
// longer than the canonical encoding is a hard parse failure, never a partial
// match.
func ParseAddress(s string) (Address, error) {
	if len(s) != hex.EncodedLen(AddressLength) {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be exactly 64 hex characters")
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Address{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "address is not valid hex")
	}
	return a, nil
}

// String returns the canonical lowercase hex encoding.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == Address{}
}
