package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("generates upload and download URLs", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateUploadURL(ctx, "products/p1/img.jpg", "image/jpeg", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "products/p1/img.jpg")
		assert.True(t, expiresAt.After(time.Now()))

		url, _, err = stub.GenerateDownloadURL(ctx, "products/p1/img.jpg", 10*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "/download/")
	})

	t.Run("rejects empty storage keys", func(t *testing.T) {
		_, _, err := stub.GenerateUploadURL(ctx, "", "image/png", time.Minute)
		assert.Error(t, err)

		_, err = stub.ObjectExists(ctx, "")
		assert.Error(t, err)
	})

	t.Run("deletion is reflected in existence checks", func(t *testing.T) {
		exists, err := stub.ObjectExists(ctx, "products/p2/img.png")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, stub.DeleteObject(ctx, "products/p2/img.png"))

		exists, err = stub.ObjectExists(ctx, "products/p2/img.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
