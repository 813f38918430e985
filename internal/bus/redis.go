package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisBus backs fan-out with Redis PUBLISH/SUBSCRIBE so a mutation on
// any API instance reaches subscribers on all instances. Redis pub/sub
// is itself at-most-once with no replay, which matches the delivery
// contract exactly. The go-redis client re-establishes dropped broker
// connections with the capped exponential backoff configured on it;
// events published during a gap are lost, not gap-filled.
type RedisBus struct {
	rdb    *redis.Client
	buffer int
}

func NewRedisBus(rdb *redis.Client, buffer int) *RedisBus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &RedisBus{rdb: rdb, buffer: buffer}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}
	if err := b.rdb.Publish(ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	// Per-subscription SUBSCRIBE connection; closing it is what tears
	// the registration down on the broker side.
	ps := b.rdb.Subscribe(ctx, topic)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	out := make(chan Message, b.buffer)
	sub := &Subscription{C: out}
	sub.cancel = func() { _ = ps.Close() }

	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- Message{Topic: msg.Channel, Payload: []byte(msg.Payload)}:
			default:
				// Lagging subscriber; drop rather than block the pump.
				log.Printf("⚠️ bus: subscriber lagging on %s, event dropped", topic)
			}
		}
	}()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}
	return sub, nil
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}
