// Package memory provides the in-memory event publisher used in tests and
// deployments without Kafka.
package memory

import (
	"context"
	"sync"

	"nameledger/internal/events"
)

// Publisher records emitted events in order.
type Publisher struct {
	mu     sync.Mutex
	events []events.Event
}

func New() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Emit(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *Publisher) Close() error { return nil }

// Events returns a snapshot of everything emitted so far.
func (p *Publisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}
