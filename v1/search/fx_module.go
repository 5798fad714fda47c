package search

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/redis"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// FXModule provides *Service. Redis is optional; without it every query
// goes to the indexes.
var FXModule = fx.Module("search",
	fx.Provide(NewServiceWithDI),
)

type ServiceParams struct {
	fx.In

	Config   Config
	Dense    *embedding.Client
	Sparse   *sparseembedding.Embedder
	Index    *qdrant.QdrantClient
	Products *catalog.Service
	Redis    *redis.RedisClient `optional:"true"`
	Logger   logger.Logger      `optional:"true"`
	Tracer   *tracer.Tracer     `optional:"true"`
}

func NewServiceWithDI(p ServiceParams) *Service {
	var cache Cache
	if p.Redis != nil {
		cache = p.Redis
	}
	return NewService(p.Config, p.Dense, p.Sparse, p.Index, p.Products, cache, p.Logger, p.Tracer)
}
