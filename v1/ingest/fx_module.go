package ingest

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// FXModule provides the ingestion Pipeline and a Scheduler that runs while
// the app runs. The vector step uses catalog.JobPublisher when one is
// provided.
var FXModule = fx.Module("ingest",
	fx.Provide(
		NewPipelineWithDI,
		func(p *Pipeline) Runner { return p },
		NewSchedulerWithDI,
	),
	fx.Invoke(RegisterSchedulerLifecycle),
)

type PipelineParams struct {
	fx.In

	Config  Config
	Store   catalog.Store
	Service *catalog.Service
	Jobs    catalog.JobPublisher `optional:"true"`
	Logger  logger.Logger        `optional:"true"`
	Tracer  *tracer.Tracer       `optional:"true"`
}

func NewPipelineWithDI(p PipelineParams) *Pipeline {
	return NewPipeline(p.Config, NewHTTPFetcher(p.Config.HTTPTimeout), p.Store, p.Service, p.Jobs, p.Logger, p.Tracer)
}

type SchedulerParams struct {
	fx.In

	Config  Config
	Runner  Runner
	Logger  logger.Logger    `optional:"true"`
	Metrics metrics.Recorder `optional:"true"`
}

func NewSchedulerWithDI(p SchedulerParams) *Scheduler {
	return NewScheduler(p.Config, p.Runner, p.Logger, p.Metrics)
}

// RegisterSchedulerLifecycle starts the schedule on app start when there is
// a source to run and waits for the current run on stop.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *Scheduler, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !s.Enabled() {
				log.Info("ingestion scheduler disabled", nil, nil)
				return nil
			}
			s.Start(context.Background())
			log.Info("ingestion scheduler started", nil, map[string]interface{}{
				"sources":  len(s.sources),
				"interval": s.interval.String(),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
