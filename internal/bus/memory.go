package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBus fans out within a single process. It backs tests and
// single-node deployments; multi-process deployments need RedisBus so
// every instance observes the same mutation stream.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]*memSub
	buffer int
	closed bool
}

type memSub struct {
	topic string
	ch    chan Message
}

func NewMemoryBus(buffer int) *MemoryBus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &MemoryBus{
		subs:   make(map[string][]*memSub),
		buffer: buffer,
	}
}

func (b *MemoryBus) Publish(_ context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("publish %s: bus closed", topic)
	}
	for _, sub := range b.subs[topic] {
		// Non-blocking send: a full buffer means the subscriber is
		// lagging and the event is dropped for it alone.
		select {
		case sub.ch <- Message{Topic: topic, Payload: data}:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("subscribe %s: bus closed", topic)
	}

	ms := &memSub{topic: topic, ch: make(chan Message, b.buffer)}
	b.subs[topic] = append(b.subs[topic], ms)

	sub := &Subscription{C: ms.ch}
	sub.cancel = func() { b.remove(ms) }

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}
	return sub, nil
}

func (b *MemoryBus) remove(ms *memSub) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[ms.topic]
	for i, s := range subs {
		if s == ms {
			b.subs[ms.topic] = append(subs[:i], subs[i+1:]...)
			close(ms.ch)
			return
		}
	}
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, s := range subs {
			close(s.ch)
		}
	}
	b.subs = make(map[string][]*memSub)
	return nil
}
