package app

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mocking "assetmapper/src/app/mock"
)

func TestNewMinioS3Client(t *testing.T) {
	client, err := NewMinioS3Client("s3.example.com:9000", "access", "secret", "assets", true)
	require.NoError(t, err)
	assert.Equal(t, "assets", client.bucketName)
	assert.True(t, client.useSSL)
}

func TestMinioS3Client(t *testing.T) {
	ctx := context.Background()

	t.Run("ListObjects filters by extension", func(t *testing.T) {
		store := new(mocking.MockClient)
		store.On("ListObjects", mock.Anything, "assets", minio.ListObjectsOptions{Prefix: "brand/", Recursive: true}).
			Return([]minio.ObjectInfo{
				{Key: "brand/logo.png"},
				{Key: "brand/notes.txt"},
				{Key: "brand/photo.JPG"},
				{Key: "brand/README"},
			})
		client := &MinioS3Client{bucketName: "assets", client: store}

		keys, err := client.ListObjects(ctx, "brand/", []string{"png", "jpg"})
		require.NoError(t, err)
		assert.Equal(t, []string{"brand/logo.png", "brand/photo.JPG"}, keys)
		store.AssertExpectations(t)
	})

	t.Run("ListObjects without filters keeps every key", func(t *testing.T) {
		store := new(mocking.MockClient)
		store.On("ListObjects", mock.Anything, "assets", mock.Anything).
			Return([]minio.ObjectInfo{{Key: "a.txt"}, {Key: "b"}})
		client := &MinioS3Client{bucketName: "assets", client: store}

		keys, err := client.ListObjects(ctx, "", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b"}, keys)
	})

	t.Run("ListObjects surfaces listing errors", func(t *testing.T) {
		store := new(mocking.MockClient)
		store.On("ListObjects", mock.Anything, "assets", mock.Anything).
			Return([]minio.ObjectInfo{{Key: "a.png"}, {Err: errors.New("access denied")}})
		client := &MinioS3Client{bucketName: "assets", client: store}

		keys, err := client.ListObjects(ctx, "", nil)
		assert.ErrorContains(t, err, "access denied")
		assert.Equal(t, []string{"a.png"}, keys)
	})

	t.Run("GetObject", func(t *testing.T) {
		store := new(mocking.MockClient)
		store.On("GetObject", mock.Anything, "assets", "logo.png", minio.GetObjectOptions{}).
			Return([]byte("png-bytes"), nil)
		store.On("GetObject", mock.Anything, "assets", "missing.png", minio.GetObjectOptions{}).
			Return(nil, errors.New("no such key"))
		client := &MinioS3Client{bucketName: "assets", client: store}

		content, err := client.GetObject(ctx, "logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), content)

		_, err = client.GetObject(ctx, "missing.png")
		assert.ErrorContains(t, err, "no such key")
	})

	t.Run("checkIn", func(t *testing.T) {
		filters := []string{"jpg", "png", "gif"}
		assert.True(t, checkIn("file.jpg", filters))
		assert.True(t, checkIn("dir/file.PNG", filters))
		assert.False(t, checkIn("file.txt", filters))
		assert.False(t, checkIn("jpg", filters))
	})
}
