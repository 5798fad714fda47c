package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/feed"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/search"
)

// Searcher is implemented by *search.Service.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.ItemList, error)
}

// Catalog is implemented by *catalog.Service.
type Catalog interface {
	UpsertItemList(ctx context.Context, body []byte) (*catalog.Ledger, error)
	ProductDetails(ctx context.Context, urn string) (*catalog.ProductDetail, error)
}

// Feeds is implemented by *feed.Service.
type Feeds interface {
	Feed(ctx context.Context, host, filename string) (json.RawMessage, error)
}

// Pinger is implemented by *postgres.Postgres.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the public API.
type Handler struct {
	cfg     Config
	search  Searcher
	catalog Catalog
	feeds   Feeds
	db      Pinger
	log     logger.Logger
}

func NewHandler(cfg Config, s Searcher, c Catalog, f Feeds, db Pinger, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{cfg: cfg.withDefaults(), search: s, catalog: c, feeds: f, db: db, log: log}
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// SearchProducts handles GET /v1/products?q=.
func (h *Handler) SearchProducts(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.search.Search(ctx, c.Query("q"))
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		detail(c, http.StatusBadRequest, "Search query cannot be empty")
		return
	case errors.Is(err, search.ErrQueryTooLong):
		detail(c, http.StatusBadRequest, "Search query must be at most 500 characters")
		return
	case err != nil:
		h.log.ErrorWithContext(ctx, "search failed", err, map[string]interface{}{"query": c.Query("q")})
		detail(c, http.StatusInternalServerError, "Search service error")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetProduct handles GET /v1/products/:sku_urn.
func (h *Handler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	urn := c.Param("sku_urn")

	product, err := h.catalog.ProductDetails(ctx, urn)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		detail(c, http.StatusNotFound, fmt.Sprintf("Product with URN '%s' not found", urn))
		return
	case err != nil:
		h.log.ErrorWithContext(ctx, "loading product failed", err, map[string]interface{}{"urn": urn})
		detail(c, http.StatusInternalServerError, "Product service error")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpsertProducts handles POST /product and /v1/product. Item-level failures
// are part of a 200 response; only envelope and group failures fail the
// request.
func (h *Handler) UpsertProducts(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			detail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		detail(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	ledger, err := h.catalog.UpsertItemList(ctx, body)
	if err != nil {
		status := catalog.StatusOf(err)
		if status < http.StatusInternalServerError {
			detail(c, status, err.Error())
			return
		}
		h.log.ErrorWithContext(ctx, "upsert request failed", err, nil)
		detail(c, status, "Internal error: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, ledger)
}

func feedHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, User-Agent")
}

// GetFeed handles GET /feed/*filename.
func (h *Handler) GetFeed(c *gin.Context) {
	ctx := c.Request.Context()
	filename := strings.TrimLeft(c.Param("filename"), "/")

	body, err := h.feeds.Feed(ctx, c.Request.Host, filename)
	if err != nil {
		status := feed.StatusOf(err)
		var ferr *feed.Error
		if errors.As(err, &ferr) {
			detail(c, status, ferr.Detail)
			return
		}
		h.log.ErrorWithContext(ctx, "serving feed failed", err, map[string]interface{}{"filename": filename})
		detail(c, status, "Error retrieving feed: "+err.Error())
		return
	}

	feedHeaders(c)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("X-Robots-Tag", "all")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// FeedOptions answers CORS preflight requests for feeds.
func (h *Handler) FeedOptions(c *gin.Context) {
	feedHeaders(c)
	c.Header("Access-Control-Max-Age", "86400")
	c.JSON(http.StatusOK, gin.H{})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			h.log.WarnWithContext(c.Request.Context(), "health check failed", err, nil)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": now,
				"error":     "database unavailable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": now})
}
