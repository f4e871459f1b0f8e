// Package adapters bridges concrete collaborators onto the orchestrator's
// interfaces.
package adapters

import (
	"crypto/ed25519"

	registryservice "nameledger/internal/registry/service"
	"nameledger/internal/verifier"
)

// Verifier adapts the crypto verifier to the orchestrator's KeyVerifier.
type Verifier struct {
	inner *verifier.Verifier
}

func NewVerifier(inner *verifier.Verifier) Verifier {
	return Verifier{inner: inner}
}

func (a Verifier) Verify(signature, digest, raw []byte) (*registryservice.Message, error) {
	msg, err := a.inner.Verify(signature, digest, raw)
	if err != nil {
		return nil, err
	}
	return &registryservice.Message{
		Payload: msg.Payload,
		Owner:   msg.Owner,
		Expiry:  msg.Expiry,
	}, nil
}

func (a Verifier) SetPublicKey(key []byte) {
	a.inner.SetPublicKey(ed25519.PublicKey(key))
}
