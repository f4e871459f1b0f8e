package naming

import (
	"strings"

	dErrors "nameledger/pkg/domain-errors"
)

// Name is a fully-qualified name: label joined with its top-level domain,
// e.g. "eastagile.sui". Records and reverse entries are keyed by Name.
type Name string

// Join builds the fully-qualified name for a label under a TLD.
func Join(label Label, tld string) Name {
	return Name(string(label) + "." + tld)
}

// Split decomposes a fully-qualified name back into its label and TLD.
// Only single-level names are representable; anything else is malformed.
func Split(n Name) (Label, string, error) {
	parts := strings.Split(string(n), ".")
	if len(parts) != 2 {
		return "", "", dErrors.New(dErrors.CodeInvalidLabel, "name must be label.tld")
	}
	label, err := ParseLabel(parts[0])
	if err != nil {
		return "", "", err
	}
	if parts[1] == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidLabel, "name has an empty TLD")
	}
	return label, parts[1], nil
}

// InTLD reports whether the name's top-level domain equals tld. Reclaim uses
// this to verify a token is bound under the base node being acted on, not just
// that the labels coincide.
func (n Name) InTLD(tld string) bool {
	_, got, err := Split(n)
	return err == nil && got == tld
}

func (n Name) String() string { return string(n) }
