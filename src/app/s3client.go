package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type (
	ClientMinio interface {
		ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
		GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	}

	// MinioS3Client reads the objects of one bucket.
	MinioS3Client struct {
		endpoint   string
		useSSL     bool
		bucketName string
		client     ClientMinio
	}

	minioClient struct {
		*minio.Client
	}
)

func (c minioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}

// NewMinioS3Client creates a new MinioS3Client instance.
func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (*MinioS3Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("can not create minio client for %s: %v", endpoint, err)
		return nil, fmt.Errorf("failed to create minio S3 client: %w", err)
	}

	return &MinioS3Client{
		endpoint:   endpoint,
		useSSL:     useSSL,
		bucketName: bucketName,
		client:     minioClient{client},
	}, nil
}

// ListObjects returns the keys under prefix whose extension is one of
// filters. An empty filter list keeps every key.
func (s3 *MinioS3Client) ListObjects(ctx context.Context, prefix string, filters []string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make([]string, 0)
	objectCh := s3.client.ListObjects(ctx, s3.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return result, fmt.Errorf("list %s/%s: %w", s3.bucketName, prefix, object.Err)
		}
		if len(filters) > 0 && !checkIn(object.Key, filters) {
			continue
		}
		result = append(result, object.Key)
	}
	return result, nil
}

// GetObject reads the whole object stored under key.
func (s3 *MinioS3Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	object, err := s3.client.GetObject(ctx, s3.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", s3.bucketName, key, err)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", s3.bucketName, key, err)
	}
	return content, nil
}

func checkIn(key string, filters []string) bool {
	ext := strings.TrimPrefix(path.Ext(key), ".")
	if ext == "" {
		return false
	}
	for _, f := range filters {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}
