// Command discovery serves the catalog ingestion, search and feed API,
// consumes vector sync jobs and pulls scheduled CMP registry feeds.
package main

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/config"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/feed"
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

func main() {
	fx.New(
		config.FXModule,
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,

		postgres.FXModule,
		catalog.FXModule,
		kafka.FXModule,
		fx.Provide(
			func(p *kafka.Producer) catalog.Producer { return p },
			catalog.NewKafkaEventPublisher,
			func(p *catalog.KafkaEventPublisher) catalog.EventPublisher { return p },
		),

		qdrant.FXModule,
		embedding.FXModule,
		sparseembedding.FXModule,
		rabbit.FXModule,
		vectorsync.FXModule,
		vectorsync.JobsFXModule,
		ingest.FXModule,

		redis.FXModule,
		search.FXModule,
		minio.FXModule,
		feed.FXModule,
		httpapi.FXModule,
	).Run()
}
