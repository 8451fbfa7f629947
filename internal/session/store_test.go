package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, time.Hour), mr
}

func TestStore_LoadUnknownIDCreatesFreshSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.True(t, sess.Fresh())
	assert.Zero(t, sess.UserID())
	assert.NotEmpty(t, sess.ID())
}

func TestStore_SaveAndReload(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "")
	require.NoError(t, err)

	sess.Bind(7)
	sess.AddFlash(FlashSuccess, "Welcome to Campstead!")
	require.NoError(t, store.Save(ctx, sess))

	reloaded, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.Fresh())
	assert.Equal(t, uint(7), reloaded.UserID())

	msgs := reloaded.ConsumeFlash()
	require.Len(t, msgs, 1)
	assert.Equal(t, FlashSuccess, msgs[0].Kind)
	assert.Equal(t, "Welcome to Campstead!", msgs[0].Text)

	// Flash is consume-once: persisting and reloading shows none left.
	require.NoError(t, store.Save(ctx, reloaded))
	again, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	assert.Empty(t, again.ConsumeFlash())
}

func TestStore_SaveSkipsCleanSessions(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	// Nothing was mutated, so nothing should be persisted.
	assert.False(t, mr.Exists(keyPrefix+sess.ID()))
}

func TestStore_ReturnToIsConsumedExactlyOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "")
	require.NoError(t, err)

	sess.SetReturnTo("/campgrounds/12/edit")
	require.NoError(t, store.Save(ctx, sess))

	reloaded, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	assert.Equal(t, "/campgrounds/12/edit", reloaded.ConsumeReturnTo())
	assert.Empty(t, reloaded.ConsumeReturnTo())
}

func TestStore_ExpiredSessionIsAnonymous(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "")
	require.NoError(t, err)
	sess.Bind(3)
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(2 * time.Hour)

	reloaded, err := store.Load(ctx, sess.ID())
	require.NoError(t, err)
	assert.True(t, reloaded.Fresh())
	assert.Zero(t, reloaded.UserID())
}

func TestStore_DestroyRemovesRecord(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Load(ctx, "")
	require.NoError(t, err)
	sess.Bind(9)
	require.NoError(t, store.Save(ctx, sess))
	require.True(t, mr.Exists(keyPrefix+sess.ID()))

	require.NoError(t, store.Destroy(ctx, sess))
	assert.False(t, mr.Exists(keyPrefix+sess.ID()))
}

func TestSession_UnbindKeepsFlash(t *testing.T) {
	sess := &Session{id: "x"}
	sess.Bind(4)
	sess.AddFlash(FlashSuccess, "Goodbye!")
	sess.Unbind()

	assert.Zero(t, sess.UserID())
	msgs := sess.ConsumeFlash()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Goodbye!", msgs[0].Text)
}
