package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// NewRouter mounts every route on a fresh gin engine.
func NewRouter(cfg Config, h *Handler, log logger.Logger, rec metrics.Recorder, tr *tracer.Tracer) *gin.Engine {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if tr == nil {
		tr = tracer.NewNoop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(Observe(log, rec, tr))

	router.GET("/healthz", h.Health)

	router.POST("/product", h.UpsertProducts)
	router.GET("/feed/*filename", h.GetFeed)
	router.OPTIONS("/feed/*filename", h.FeedOptions)

	v1 := router.Group("/v1")
	{
		v1.GET("/products", h.SearchProducts)
		v1.GET("/products/:sku_urn", h.GetProduct)
		v1.POST("/product", h.UpsertProducts)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
