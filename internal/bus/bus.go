// Package bus is the notification fan-out layer. Mutation services
// publish named events after a successful create or update; live
// subscription clients consume them. Delivery is at-most-once and
// best-effort: there is no replay, and a subscriber that cannot keep
// up with its bounded buffer loses the newest events rather than
// blocking publishers or other subscribers.
package bus

import (
	"context"
	"sync"
)

// Message is one delivered event. Payload is the JSON encoding of the
// mutated record, identical whether it crossed a broker or not.
type Message struct {
	Topic   string
	Payload []byte
}

// Subscription is a live feed for one topic. C is closed when the
// subscription ends, whether by Close, context cancellation or bus
// shutdown.
type Subscription struct {
	C <-chan Message

	once   sync.Once
	cancel func()
}

// Close deterministically releases the subscription's registration
// and buffer. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Bus decouples "a mutation happened" from "subscribers are told".
type Bus interface {
	// Publish sends payload (JSON-encoded) to every current subscriber
	// of topic, across all processes sharing the broker. It never
	// blocks on slow subscribers. The caller treats a returned error
	// as log-and-continue; a publish failure must not fail the
	// mutation that triggered it.
	Publish(ctx context.Context, topic string, payload interface{}) error

	// Subscribe opens a feed for one topic. Events published before
	// the call are never delivered. The subscription is torn down when
	// ctx is cancelled or Close is called.
	Subscribe(ctx context.Context, topic string) (*Subscription, error)

	Close() error
}

// DefaultBuffer is the per-subscriber buffer capacity used when the
// configuration does not set one.
const DefaultBuffer = 16
