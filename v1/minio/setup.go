package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// MinioClient reads and writes feed objects in one bucket.
type MinioClient struct {
	cfg    Config
	client *minio.Client
	log    logger.Logger
}

// NewClient builds the client without touching the network. Call
// EnsureBucket (done by the fx lifecycle) to validate credentials.
func NewClient(cfg Config, log logger.Logger) (*MinioClient, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}
	if cfg.Connection.BucketName == "" {
		return nil, fmt.Errorf("minio bucket name cannot be empty")
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioClient{cfg: cfg, client: client, log: log}, nil
}

// EnsureBucket checks that the bucket exists and creates it when allowed.
// Bucket-scoped calls only, so credentials need no ListAllMyBuckets.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bucket := m.cfg.Connection.BucketName
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if !m.cfg.Connection.AccessBucketCreation {
		return fmt.Errorf("bucket %s does not exist, please create it manually", bucket)
	}

	m.log.Info("Bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": bucket,
		"region": m.cfg.Connection.Region,
	})
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.cfg.Connection.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (m *MinioClient) Bucket() string {
	return m.cfg.Connection.BucketName
}
