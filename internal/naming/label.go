// Package naming holds the validated name primitives: labels, fully-qualified
// names, and canonical addresses. Invalid values are rejected at construction
// and never reach a store.
package naming

import (
	"strings"
	"unicode/utf8"

	dErrors "nameledger/pkg/domain-errors"
)

// Label length bounds, in bytes. The upper bound matches the common DNS
// fragment limit; the lower bound keeps single-character vanity names legal.
const (
	MinLabelLength = 1
	MaxLabelLength = 63
)

// Label is the validated leaf segment of a name. The zero value is invalid;
// obtain one through ParseLabel.
type Label string

// ParseLabel validates s as a label. Labels are lowercase ASCII letters,
// digits, and interior hyphens; they carry no separators. Any invalid byte
// sequence is rejected here so malformed names never enter state.
func ParseLabel(s string) (Label, error) {
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidLabel, "label is not valid UTF-8")
	}
	if len(s) < MinLabelLength || len(s) > MaxLabelLength {
		return "", dErrors.New(dErrors.CodeInvalidLabel, "label length out of range")
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return "", dErrors.New(dErrors.CodeInvalidLabel, "label must not start or end with a hyphen")
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return "", dErrors.New(dErrors.CodeInvalidLabel, "label contains an invalid character")
		}
	}
	return Label(s), nil
}

func (l Label) String() string { return string(l) }
