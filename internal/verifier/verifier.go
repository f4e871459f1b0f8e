// Package verifier validates detached signatures over the canonical update
// message used by the authenticated off-chain update protocol.
//
// The verifier owns steps 1–4 of the protocol: structural checks, digest
// recomputation, signature verification, and strict message parsing. The
// cross-checks against live state (current expiry, current token holder,
// token freshness) belong to the registry, which re-derives authorization
// from stored truth rather than trusting anything in the message.
package verifier

import (
	"crypto/ed25519"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"nameledger/internal/naming"
	dErrors "nameledger/pkg/domain-errors"
)

// Message is the decoded canonical update message:
// "payload,owner-address-hex,expiry-decimal" in ASCII, exactly three fields.
type Message struct {
	// Payload is applied to the token's display field on success.
	Payload string
	// Owner is the address the message claims currently holds the token.
	Owner naming.Address
	// Expiry is the lease deadline the message was signed for. A renewal
	// changes the live expiry and thereby invalidates older signed messages.
	Expiry uint64
}

// Verifier checks signatures against the single deployment-configured key.
type Verifier struct {
	mu  sync.RWMutex
	key ed25519.PublicKey
}

func New(key ed25519.PublicKey) *Verifier {
	return &Verifier{key: key}
}

// SetPublicKey replaces the verification key. Gated by the admin capability
// at the registry layer.
func (v *Verifier) SetPublicKey(key ed25519.PublicKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.key = key
}

// Verify runs the structural and cryptographic pipeline over a detached
// signature, a supplied digest, and the raw message, returning the decoded
// message on success.
func (v *Verifier) Verify(signature, digest, raw []byte) (*Message, error) {
	if len(signature) == 0 || len(digest) == 0 || len(raw) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidMessage, "signature, digest, and message must not be empty")
	}

	computed := blake2b.Sum256(raw)
	if string(computed[:]) != string(digest) {
		return nil, dErrors.New(dErrors.CodeHashedMessageNotMatch, "digest does not match the message")
	}

	v.mu.RLock()
	key := v.key
	v.mu.RUnlock()
	if len(key) != ed25519.PublicKeySize || !ed25519.Verify(key, digest, signature) {
		return nil, dErrors.New(dErrors.CodeSignatureNotMatch, "signature verification failed")
	}

	return parseMessage(raw)
}

// parseMessage decodes the comma-separated record. Any deviation in field
// count or address width is a hard parse failure, never a partial match.
func parseMessage(raw []byte) (*Message, error) {
	fields := strings.Split(string(raw), ",")
	if len(fields) != 3 {
		return nil, dErrors.New(dErrors.CodeInvalidMessage, "message must have exactly three fields")
	}

	owner, err := naming.ParseAddress(fields[1])
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidMessage, "owner field is not a canonical address")
	}

	expiry, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidMessage, "expiry field is not a decimal integer")
	}

	return &Message{Payload: fields[0], Owner: owner, Expiry: expiry}, nil
}
