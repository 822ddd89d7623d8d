package minio_mock

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// MockClient stands in for the minio client of a single bucket.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	objects := args.Get(0).([]minio.ObjectInfo)

	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func (m *MockClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(args.Get(0).([]byte))), nil
}
