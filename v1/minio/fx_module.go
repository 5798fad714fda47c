package minio

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// FXModule provides *MinioClient and verifies the bucket on start.
var FXModule = fx.Module("minio",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterMinioLifecycle),
)

type MinioParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

func NewClientWithDI(params MinioParams) (*MinioClient, error) {
	return NewClient(params.Config, params.Logger)
}

func RegisterMinioLifecycle(lc fx.Lifecycle, m *MinioClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := m.EnsureBucket(ctx); err != nil {
				return err
			}
			m.log.Info("MinIO bucket ready", nil, map[string]interface{}{
				"endpoint": m.cfg.Connection.Endpoint,
				"bucket":   m.cfg.Connection.BucketName,
			})
			return nil
		},
	})
}
