package bus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID string `json:"id"`
}

func recv(t *testing.T, sub *Subscription) Message {
	t.Helper()
	select {
	case msg, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestSubscriberReceivesPublishedEvent(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "userCreated", note{ID: "u1"}))

	msg := recv(t, sub)
	assert.Equal(t, "userCreated", msg.Topic)

	var n note
	require.NoError(t, json.Unmarshal(msg.Payload, &n))
	assert.Equal(t, "u1", n.ID)
}

func TestNoReplayForLateSubscriber(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	require.NoError(t, b.Publish(context.Background(), "userCreated", note{ID: "early"}))

	sub, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)

	select {
	case msg := <-sub.C:
		t.Fatalf("late subscriber saw replayed event: %s", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	created, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)
	updated, err := b.Subscribe(context.Background(), "userUpdated")
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "userUpdated", note{ID: "u1"}))

	msg := recv(t, updated)
	assert.Equal(t, "userUpdated", msg.Topic)

	select {
	case <-created.C:
		t.Fatal("userCreated subscriber received userUpdated event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowSubscriberDropsNewestWithoutBlocking(t *testing.T) {
	b := NewMemoryBus(2)
	defer b.Close()

	slow, err := b.Subscribe(context.Background(), "eventCreated")
	require.NoError(t, err)
	fast, err := b.Subscribe(context.Background(), "eventCreated")
	require.NoError(t, err)

	// Fill the slow subscriber's buffer and keep going; publishes must
	// return immediately and the fast consumer must see everything.
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Publish(context.Background(), "eventCreated", note{ID: "e"}))
		recv(t, fast)
	}

	// Slow subscriber kept only what its buffer held.
	count := 0
	for {
		select {
		case <-slow.C:
			count++
		case <-time.After(50 * time.Millisecond):
			assert.Equal(t, 2, count)
			return
		}
	}
}

func TestCloseReleasesSubscription(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)
	sub.Close()
	sub.Close() // idempotent

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed")

	// Publishing with no live subscribers must not panic or fail.
	require.NoError(t, b.Publish(context.Background(), "userCreated", note{ID: "u1"}))
}

func TestContextCancelTearsDownSubscription(t *testing.T) {
	b := NewMemoryBus(0)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := b.Subscribe(ctx, "userCreated")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-sub.C:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after context cancel")
	}
}

func TestPublishAfterBusClose(t *testing.T) {
	b := NewMemoryBus(0)
	sub, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)

	require.NoError(t, b.Close())

	_, ok := <-sub.C
	assert.False(t, ok)

	assert.Error(t, b.Publish(context.Background(), "userCreated", note{ID: "u1"}))
	assert.NoError(t, b.Close())
}

func TestPerTopicOrderingPreserved(t *testing.T) {
	b := NewMemoryBus(16)
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "userCreated")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Publish(context.Background(), "userCreated", note{ID: string(rune('a' + i))}))
	}
	for i := 0; i < 10; i++ {
		var n note
		require.NoError(t, json.Unmarshal(recv(t, sub).Payload, &n))
		assert.Equal(t, string(rune('a'+i)), n.ID)
	}
}
