package study

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabot/pkg/models"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)

	session := sessionInState(StateStudying)
	require.NoError(t, store.Put(ctx, session))

	got, err := store.Get(ctx, session.Handle)
	require.NoError(t, err)
	assert.Same(t, session, got)

	require.NoError(t, store.Delete(ctx, session.Handle))
	_, err = store.Get(ctx, session.Handle)
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, session.Handle))
}

func TestMemorySessionStoreReplacesUserSession(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	first := sessionInState(StateStudying)
	first.Handle = "first"
	second := sessionInState(StateStudying)
	second.Handle = "second"

	require.NoError(t, store.Put(ctx, first))
	require.NoError(t, store.Put(ctx, second))

	_, err := store.Get(ctx, "first")
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)
	got, err := store.Get(ctx, "second")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestMemorySessionStoreKeepsOtherUsers(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	alice := sessionInState(StateStudying)
	alice.Handle = "alice"
	alice.UserID = 1
	bob := sessionInState(StateStudying)
	bob.Handle = "bob"
	bob.UserID = 2

	require.NoError(t, store.Put(ctx, alice))
	require.NoError(t, store.Put(ctx, bob))

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	got, err = store.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UserID)
}
