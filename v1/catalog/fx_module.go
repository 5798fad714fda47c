package catalog

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/postgres"
)

// FXModule provides the gorm-backed Store and the catalog Service. Event and
// job publishers are picked up when another module provides them.
var FXModule = fx.Module("catalog",
	fx.Provide(
		NewGormStore,
		func(s *GormStore) Store { return s },
		NewServiceWithDI,
	),
	fx.Invoke(RegisterCatalogLifecycle),
)

type ServiceParams struct {
	fx.In

	Config  Config
	Store   Store
	Logger  logger.Logger
	Metrics metrics.Recorder `optional:"true"`
	Events  EventPublisher   `optional:"true"`
	Jobs    JobPublisher     `optional:"true"`
}

func NewServiceWithDI(params ServiceParams) *Service {
	return NewService(params.Config, params.Store, params.Logger, params.Metrics, params.Events, params.Jobs)
}

// RegisterCatalogLifecycle migrates the catalog tables on start when enabled.
func RegisterCatalogLifecycle(lc fx.Lifecycle, cfg Config, pg *postgres.Postgres, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.AutoMigrate {
				return nil
			}
			if err := pg.Migrate(Models()...); err != nil {
				log.Error("catalog migration failed", err, nil)
				return err
			}
			log.Info("catalog tables migrated", nil, nil)
			return nil
		},
	})
}
