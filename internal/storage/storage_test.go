package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey_KeepsExtension(t *testing.T) {
	key := ObjectKey("pine-ridge.jpg")
	assert.True(t, strings.HasPrefix(key, "campgrounds/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// Keys for the same original name must not collide.
	assert.NotEqual(t, key, ObjectKey("pine-ridge.jpg"))
}

func TestMemoryStore_UploadAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	obj, err := store.Upload(ctx, "campgrounds/a.jpg", strings.NewReader("bytes"), 5, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "campgrounds/a.jpg", obj.Filename)
	assert.NotEmpty(t, obj.URL)
	assert.True(t, store.Has("campgrounds/a.jpg"))

	require.NoError(t, store.Delete(ctx, "campgrounds/a.jpg"))
	assert.False(t, store.Has("campgrounds/a.jpg"))
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Deleting a key that never existed must not fail.
	require.NoError(t, store.Delete(ctx, "campgrounds/ghost.jpg"))
	require.NoError(t, store.Delete(ctx, "campgrounds/ghost.jpg"))
	assert.Equal(t, 2, store.DeleteCalls("campgrounds/ghost.jpg"))
}
