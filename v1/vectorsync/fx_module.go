package vectorsync

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/rabbit"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// FXModule provides *Pipeline with qdrant-backed dense and sparse sinks.
var FXModule = fx.Module("vectorsync",
	fx.Provide(NewPipelineWithDI),
)

// JobsFXModule adds the RabbitMQ job publisher, bound to
// catalog.JobPublisher, and a worker that consumes jobs while the app runs.
var JobsFXModule = fx.Module("vectorsync-jobs",
	fx.Provide(
		NewJobPublisherWithDI,
		func(p *JobPublisher) catalog.JobPublisher { return p },
		func(p *Pipeline) Runner { return p },
		NewWorkerWithDI,
	),
	fx.Invoke(RegisterWorkerLifecycle),
)

type PipelineParams struct {
	fx.In

	Config  Config
	Store   catalog.Store
	Dense   *embedding.Client
	Sparse  *sparseembedding.Embedder
	Qdrant  *qdrant.QdrantClient
	Logger  logger.Logger    `optional:"true"`
	Metrics metrics.Recorder `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

func NewPipelineWithDI(p PipelineParams) *Pipeline {
	return NewPipeline(p.Config, p.Store,
		NewDenseSink(p.Dense, p.Qdrant),
		NewSparseSink(p.Sparse, p.Qdrant),
		p.Logger, p.Metrics, p.Tracer)
}

type JobPublisherParams struct {
	fx.In

	Client rabbit.Client
	Tracer *tracer.Tracer `optional:"true"`
}

func NewJobPublisherWithDI(p JobPublisherParams) *JobPublisher {
	return NewJobPublisher(p.Client, p.Tracer)
}

type WorkerParams struct {
	fx.In

	Client  rabbit.Client
	Runner  Runner
	Logger  logger.Logger    `optional:"true"`
	Metrics metrics.Recorder `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

func NewWorkerWithDI(p WorkerParams) *Worker {
	return NewWorker(p.Client, p.Runner, p.Logger, p.Metrics, p.Tracer)
}

// RegisterWorkerLifecycle starts consuming on app start and drains the
// current job on stop.
func RegisterWorkerLifecycle(lc fx.Lifecycle, w *Worker, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Start(context.Background())
			log.Info("vector sync worker started", nil, nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			w.Stop()
			log.Info("vector sync worker stopped", nil, nil)
			return nil
		},
	})
}
