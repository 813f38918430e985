package user

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
	"eventhub/internal/store"
)

func newTestService() (*Service, *bus.MemoryBus) {
	b := bus.NewMemoryBus(16)
	return NewService(NewRepository(), b, auditlog.NewService(nil, "")), b
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "mario.sanchez",
		Email:    "mario.sanchez@example.com",
	}, "")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc, _ := newTestService()

	a, _ := svc.Create(context.Background(), CreateUserRequest{Username: "a", Email: "a@x"}, "")
	b, _ := svc.Create(context.Background(), CreateUserRequest{Username: "b", Email: "b@x"}, "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdateEmptyPayloadIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	created, _ := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")

	updated, err := svc.Update(context.Background(), created.ID, UpdateUserRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService()
	created, _ := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "old@x"}, "")

	email := "new@x"
	updated, err := svc.Update(context.Background(), created.ID, UpdateUserRequest{Email: &email}, "")
	require.NoError(t, err)
	assert.Equal(t, "new@x", updated.Email)
	assert.Equal(t, "u", updated.Username)

	got, _ := svc.Get(created.ID)
	assert.Equal(t, updated, got)
}

func TestUpdateMissingIDFails(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), "missing", UpdateUserRequest{}, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteReturnsSnapshotThenNotFound(t *testing.T) {
	svc, _ := newTestService()
	created, _ := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")

	removed, err := svc.Delete(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Delete(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteAllReturnsPriorCount(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 4; i++ {
		_, _ = svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")
	}

	assert.Equal(t, 4, svc.DeleteAll(context.Background(), ""))
	assert.Empty(t, svc.List())
	assert.Equal(t, 0, svc.DeleteAll(context.Background(), ""))
}

func TestCreatePublishesExactlyOneNotification(t *testing.T) {
	svc, b := newTestService()

	sub, err := b.Subscribe(context.Background(), TopicCreated)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")
	require.NoError(t, err)

	select {
	case msg := <-sub.C:
		var got User
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, created, got)
	case <-time.After(time.Second):
		t.Fatal("no userCreated notification received")
	}

	select {
	case msg := <-sub.C:
		t.Fatalf("unexpected second notification: %s", msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUpdatePublishesUpdatedRecord(t *testing.T) {
	svc, b := newTestService()
	created, _ := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "old@x"}, "")

	sub, err := b.Subscribe(context.Background(), TopicUpdated)
	require.NoError(t, err)

	email := "new@x"
	_, err = svc.Update(context.Background(), created.ID, UpdateUserRequest{Email: &email}, "")
	require.NoError(t, err)

	select {
	case msg := <-sub.C:
		var got User
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "new@x", got.Email)
		assert.Equal(t, "u", got.Username)
	case <-time.After(time.Second):
		t.Fatal("no userUpdated notification received")
	}
}

// Deletes intentionally publish nothing; only create and update do.
func TestDeletePublishesNothing(t *testing.T) {
	svc, b := newTestService()
	created, _ := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")

	createdSub, _ := b.Subscribe(context.Background(), TopicCreated)
	updatedSub, _ := b.Subscribe(context.Background(), TopicUpdated)

	_, err := svc.Delete(context.Background(), created.ID, "")
	require.NoError(t, err)
	svc.DeleteAll(context.Background(), "")

	select {
	case msg := <-createdSub.C:
		t.Fatalf("delete published on %s: %s", TopicCreated, msg.Payload)
	case msg := <-updatedSub.C:
		t.Fatalf("delete published on %s: %s", TopicUpdated, msg.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

// A closed bus makes every publish fail; the mutation must still
// succeed because publication is fire-and-forget.
func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	b := bus.NewMemoryBus(16)
	svc := NewService(NewRepository(), b, auditlog.NewService(nil, ""))
	require.NoError(t, b.Close())

	created, err := svc.Create(context.Background(), CreateUserRequest{Username: "u", Email: "u@x"}, "")
	require.NoError(t, err)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
