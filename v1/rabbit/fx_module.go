package rabbit

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// FXModule provides *RabbitClient and the Client interface, and keeps the
// connection alive for the lifetime of the app.
//
//	app := fx.New(
//		logger.FXModule,
//		rabbit.FXModule,
//		fx.Provide(func() rabbit.Config { return cfg.Rabbit }),
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClientWithDI,
		func(r *RabbitClient) Client { return r },
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create a Rabbit client
type RabbitParams struct {
	fx.In

	Config  Config
	Logger  logger.Logger    `optional:"true"`
	Metrics metrics.Recorder `optional:"true"`
}

func NewClientWithDI(params RabbitParams) (*RabbitClient, error) {
	return NewClient(params.Config, params.Logger, params.Metrics)
}

// RegisterRabbitLifecycle runs the reconnect loop on start and shuts the
// client down on stop, waiting for the loop to exit.
func RegisterRabbitLifecycle(lc fx.Lifecycle, client *RabbitClient) {
	wg := &sync.WaitGroup{}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				client.RetryConnection()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.GracefulShutdown()
			wg.Wait()
			return nil
		},
	})
}
