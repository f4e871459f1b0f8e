package domain

import (
	"testing"

	"github.com/google/uuid"
)

// FuzzParseTokenID checks that arbitrary input never round-trips into a nil ID
// and that accepted input parses consistently with uuid.Parse.
func FuzzParseTokenID(f *testing.F) {
	f.Add("")
	f.Add("not-a-uuid")
	f.Add(uuid.Nil.String())
	f.Add(uuid.New().String())

	f.Fuzz(func(t *testing.T, s string) {
		id, err := ParseTokenID(s)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Fatalf("ParseTokenID(%q) accepted a nil ID", s)
		}
		u, uerr := uuid.Parse(s)
		if uerr != nil {
			t.Fatalf("ParseTokenID accepted %q but uuid.Parse rejects it: %v", s, uerr)
		}
		if TokenID(u) != id {
			t.Fatalf("ParseTokenID(%q) = %v, want %v", s, id, u)
		}
	})
}
