package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// FXModule provides *Producer from a Config and closes it on stop.
var FXModule = fx.Module("kafka",
	fx.Provide(NewProducerWithDI),
	fx.Invoke(RegisterKafkaLifecycle),
)

type KafkaParams struct {
	fx.In

	Config  Config
	Logger  logger.Logger    `optional:"true"`
	Metrics metrics.Recorder `optional:"true"`
}

func NewProducerWithDI(params KafkaParams) (*Producer, error) {
	return NewProducer(params.Config, params.Logger, params.Metrics)
}

func RegisterKafkaLifecycle(lc fx.Lifecycle, p *Producer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Close()
		},
	})
}
