package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// Object is a fetched object and its metadata.
type Object struct {
	Key         string
	ContentType string
	ETag        string
	Data        []byte
}

// Get downloads objectKey. A missing key yields ErrObjectNotFound.
func (m *MinioClient) Get(ctx context.Context, objectKey string) (*Object, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat surfaces NoSuchKey before reading.
	info, err := obj.Stat()
	if err != nil {
		return nil, translateError(err)
	}

	buf := bytes.NewBuffer(make([]byte, 0, info.Size))
	if _, err := io.Copy(buf, obj); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectKey, translateError(err))
	}

	return &Object{
		Key:         objectKey,
		ContentType: info.ContentType,
		ETag:        info.ETag,
		Data:        buf.Bytes(),
	}, nil
}

// Put uploads data under objectKey.
func (m *MinioClient) Put(ctx context.Context, objectKey string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.cfg.Connection.BucketName, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}
	return nil
}

func (m *MinioClient) Delete(ctx context.Context, objectKey string) error {
	return m.client.RemoveObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.RemoveObjectOptions{})
}
