package drivers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutAndList(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root, "photos")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.PutObject(ctx, "b.jpg", []byte("b")))
	require.NoError(t, store.PutObject(ctx, "2024/a.jpg", []byte("a")))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b.jpg", "2024/a.jpg"}, keys)

	data, err := os.ReadFile(filepath.Join(root, "photos", "2024", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
}

func TestLocalListEmptyBucket(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-bucket"), 0755))

	store, err := NewLocalStorage(root, "empty-bucket")
	require.NoError(t, err)

	keys, err := store.ListKeys(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestLocalListMissingBucket(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "nope")
	require.NoError(t, err)

	_, err = store.ListKeys(context.Background())
	assert.ErrorIs(t, err, ErrBucketNotFound)
}

func TestLocalRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "photos")
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "../escape.txt", "a/../../escape.txt", "/etc/passwd"} {
		assert.Error(t, store.PutObject(ctx, key, []byte("x")), "key %q", key)
	}
}

func TestLocalRejectsBadBucketName(t *testing.T) {
	for _, bucket := range []string{"", "..", "a/b"} {
		_, err := NewLocalStorage(t.TempDir(), bucket)
		assert.Error(t, err, "bucket %q", bucket)
	}
}
