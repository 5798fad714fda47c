package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/feed"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/postgres"
	"github.com/Aleph-Alpha/discovery/v1/search"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// FXModule builds the router from the search, catalog and feed services and
// serves it for the lifetime of the app.
var FXModule = fx.Module("httpapi",
	fx.Provide(
		NewHandlerWithDI,
		NewRouterWithDI,
		NewServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

type HandlerParams struct {
	fx.In

	Config   Config
	Search   *search.Service
	Catalog  *catalog.Service
	Feeds    *feed.Service
	Postgres *postgres.Postgres `optional:"true"`
	Logger   logger.Logger
}

func NewHandlerWithDI(p HandlerParams) *Handler {
	var db Pinger
	if p.Postgres != nil {
		db = p.Postgres
	}
	return NewHandler(p.Config, p.Search, p.Catalog, p.Feeds, db, p.Logger)
}

type RouterParams struct {
	fx.In

	Config  Config
	Handler *Handler
	Logger  logger.Logger
	Metrics metrics.Recorder `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

func NewRouterWithDI(p RouterParams) *gin.Engine {
	return NewRouter(p.Config, p.Handler, p.Logger, p.Metrics, p.Tracer)
}

func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
