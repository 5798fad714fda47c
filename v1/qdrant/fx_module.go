package qdrant

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *QdrantClient and bootstraps the collections on start.
var FXModule = fx.Module("qdrant",
	fx.Provide(NewQdrantClient),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies of NewQdrantClient.
type QdrantParams struct {
	fx.In

	Config *Config
}

func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.EnsureCollections(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
