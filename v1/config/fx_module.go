package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/httpapi"
	"github.com/Aleph-Alpha/discovery/v1/ingest"
	"github.com/Aleph-Alpha/discovery/v1/kafka"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/minio"
	"github.com/Aleph-Alpha/discovery/v1/postgres"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/rabbit"
	"github.com/Aleph-Alpha/discovery/v1/redis"
	"github.com/Aleph-Alpha/discovery/v1/search"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
	"github.com/Aleph-Alpha/discovery/v1/vectorsync"
)

// FXModule loads the configuration once and provides the per-package
// configs every other FXModule depends on.
var FXModule = fx.Module("config",
	fx.Provide(
		Load,
		Split,
	),
)

// Configs fans a Config out into the values consumed by each package.
type Configs struct {
	fx.Out

	Logger          logger.Config
	Metrics         metrics.Config
	Tracer          tracer.Config
	Postgres        postgres.Config
	Catalog         catalog.Config
	Qdrant          *qdrant.Config
	Embedding       *embedding.Config
	SparseEmbedding *sparseembedding.Config
	VectorSync      vectorsync.Config
	Search          search.Config
	Redis           redis.Config
	Rabbit          rabbit.Config
	Kafka           kafka.Config
	MinIO           minio.Config
	Ingest          ingest.Config
	HTTP            httpapi.Config
}

// Split returns each section of cfg as a separate fx value.
func Split(cfg *Config) Configs {
	return Configs{
		Logger:          cfg.Logger,
		Metrics:         cfg.Metrics,
		Tracer:          cfg.Tracer,
		Postgres:        cfg.Postgres,
		Catalog:         cfg.Catalog,
		Qdrant:          cfg.Qdrant,
		Embedding:       cfg.Embedding,
		SparseEmbedding: cfg.SparseEmbedding,
		VectorSync:      cfg.VectorSync,
		Search:          cfg.Search,
		Redis:           cfg.Redis,
		Rabbit:          cfg.Rabbit,
		Kafka:           cfg.Kafka,
		MinIO:           cfg.MinIO,
		Ingest:          cfg.Ingest,
		HTTP:            cfg.HTTP,
	}
}
