package services

import (
	"context"
	"io"
	"testing"

	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestDiskPhotoStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskPhotoStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Store(ctx, []byte("jpeg-bytes"), "p-1-abc-0.jpg")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/photos/p-1-abc-0.jpg", url)

	rc, err := store.Open(ctx, "p-1-abc-0.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))
}

func TestDiskPhotoStoreRejectsPathNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskPhotoStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../secret.jpg", "a/b.jpg", `a\b.jpg`, ".hidden"} {
		_, err := store.Store(ctx, []byte("x"), name)
		require.ErrorIs(t, err, internal_utils.ErrInvalidPhotoName, name)
		_, err = store.Open(ctx, name)
		require.ErrorIs(t, err, internal_utils.ErrInvalidPhotoName, name)
	}
}

func TestDiskPhotoStoreMissingPhoto(t *testing.T) {
	store, err := NewDiskPhotoStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Open(context.Background(), "nope.jpg")
	require.ErrorIs(t, err, internal_utils.ErrPhotoNotFound)
}
