package feed

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/minio"
)

// FXModule provides *Service backed by the catalog store and MinIO.
var FXModule = fx.Module("feed",
	fx.Provide(func(store catalog.Store, objects *minio.MinioClient, log logger.Logger) *Service {
		return NewService(store, objects, log)
	}),
)
