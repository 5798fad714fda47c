package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// FXModule provides *RedisClient from a Config. The lifecycle pings on start
// (failures are logged, the cache is optional) and closes on stop.
var FXModule = fx.Module("redis",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterRedisLifecycle),
)

type RedisParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	return NewClient(params.Config, params.Logger)
}

func RegisterRedisLifecycle(lc fx.Lifecycle, client *RedisClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx); err != nil {
				client.log.Warn("Redis not reachable at startup", err, nil)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
