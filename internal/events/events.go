// Package events defines the registry lifecycle event stream.
//
// The core treats event emission as an external collaborator: services call
// the Publisher interface and never depend on the transport. Production wires
// the Kafka publisher; tests use the in-memory one.
package events

import (
	"context"
	"time"
)

// Type enumerates the lifecycle events the registry emits.
type Type string

const (
	TypeNameRegistered  Type = "name_registered"
	TypeNameRenewed     Type = "name_renewed"
	TypeRecordReclaimed Type = "record_reclaimed"
	TypeTargetChanged   Type = "target_changed"
	TypeImageUpdated    Type = "image_updated"
)

// Event is one lifecycle fact about a name.
type Event struct {
	Type Type `json:"type"`
	// Name is the fully-qualified name the event concerns.
	Name string `json:"name"`
	// Owner is the canonical hex address relevant to the event, when any.
	Owner string `json:"owner,omitempty"`
	// Expiry is the lease deadline after the operation, when relevant.
	Expiry uint64 `json:"expiry,omitempty"`
	// Tick is the caller-supplied clock tick the operation ran at.
	Tick uint64 `json:"tick"`
	// EmittedAt is wall-clock metadata, not part of expiry math.
	EmittedAt time.Time `json:"emitted_at"`
}

// Publisher emits lifecycle events. Emission failures must not abort the
// operation that produced them; callers log and continue.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
	Close() error
}
