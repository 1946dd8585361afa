package session

import (
	"context"
	"testing"
	"time"

	"github.com/Amansahu83/clothstore-web/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, kvstore.Store, *Broadcaster) {
	store := kvstore.NewMemoryStore()
	bus := NewBroadcaster()
	return NewManager(store, bus), store, bus
}

func TestSetAuth_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager()

	user := User{ID: 7, Name: "Asha", Email: "asha@example.com", Role: RoleCustomer}
	require.NoError(t, m.SetAuth(ctx, "tok-123", user))

	assert.Equal(t, "tok-123", m.Token(ctx))
	got := m.User(ctx)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
	assert.False(t, m.IsAdmin(ctx))
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager()

	assert.False(t, m.IsAdmin(ctx), "no session means no admin")

	require.NoError(t, m.SetAuth(ctx, "tok", User{ID: 1, Role: RoleAdmin}))
	assert.True(t, m.IsAdmin(ctx))

	require.NoError(t, m.SetAuth(ctx, "tok", User{ID: 2, Role: RoleCustomer}))
	assert.False(t, m.IsAdmin(ctx))
}

func TestUser_CorruptValueReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager()

	require.NoError(t, store.Set(ctx, kvstore.KeyUser, `{broken json`))

	assert.Nil(t, m.User(ctx))
	assert.False(t, m.IsAdmin(ctx))
}

func TestClearAuth_RemovesAllSessionState(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager()

	require.NoError(t, m.SetAuth(ctx, "tok", User{ID: 1, Role: RoleAdmin}))
	require.NoError(t, store.Set(ctx, kvstore.KeyCart, `[{"id":1,"quantity":1}]`))
	require.NoError(t, store.Set(ctx, kvstore.KeyWatermark, "1700000000000"))

	require.NoError(t, m.ClearAuth(ctx))

	assert.Equal(t, "", m.Token(ctx))
	assert.Nil(t, m.User(ctx))
	assert.False(t, m.IsAdmin(ctx))
	for _, key := range []string{kvstore.KeyToken, kvstore.KeyUser, kvstore.KeyCart, kvstore.KeyWatermark} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound, key)
	}
}

func TestManager_NoopStoreFailsSoft(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kvstore.Noop{}, NewBroadcaster())

	assert.Equal(t, "", m.Token(ctx))
	assert.Nil(t, m.User(ctx))
	assert.False(t, m.IsAdmin(ctx))
	assert.NoError(t, m.ClearAuth(ctx))
}

func TestBroadcaster_AllSubscribersSignalled(t *testing.T) {
	ctx := context.Background()
	m, _, bus := newTestManager()

	ch1, unsub1 := bus.Subscribe()
	ch2, unsub2 := bus.Subscribe()
	defer unsub1()
	defer unsub2()

	require.NoError(t, m.SetAuth(ctx, "tok", User{ID: 1, Role: RoleCustomer}))

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive auth-changed signal", i+1)
		}
	}
}

func TestBroadcaster_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBroadcaster()
	ch, unsub := bus.Subscribe()
	defer unsub()

	// Nobody drains; two publishes coalesce into one pending signal.
	bus.Publish()
	bus.Publish()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce, not queue")
	default:
	}
}

func TestBroadcaster_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBroadcaster()
	ch, unsub := bus.Subscribe()
	unsub()

	bus.Publish()

	select {
	case <-ch:
		t.Fatal("unsubscribed channel should not be signalled")
	default:
	}
}

func TestSetAuth_SignalFiresAfterBothWrites(t *testing.T) {
	ctx := context.Background()
	m, _, bus := newTestManager()

	ch, unsub := bus.Subscribe()
	defer unsub()

	require.NoError(t, m.SetAuth(ctx, "tok", User{ID: 3, Role: RoleAdmin}))

	select {
	case <-ch:
		// By the time the signal is observable, both fields must read back.
		assert.Equal(t, "tok", m.Token(ctx))
		require.NotNil(t, m.User(ctx))
	case <-time.After(time.Second):
		t.Fatal("auth-changed signal never fired")
	}
}
