package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/redis"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// QueryEmbedder is implemented by *embedding.Client.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// SparseQueryEmbedder is implemented by *sparseembedding.Embedder.
type SparseQueryEmbedder interface {
	Embed(ctx context.Context, text string) (sparseembedding.Vector, error)
}

// Index is implemented by *qdrant.QdrantClient.
type Index interface {
	SearchDense(ctx context.Context, vector []float32, topK int) ([]qdrant.SearchResult, error)
	SearchSparse(ctx context.Context, indices []uint32, values []float32, topK int) ([]qdrant.SearchResult, error)
}

// ProductLoader is implemented by *catalog.Service.
type ProductLoader interface {
	ProductsByURN(ctx context.Context, urns []string) (map[string]*catalog.ProductDetail, error)
}

// Cache is implemented by *redis.RedisClient. Get must return an error for
// which redis.IsNilError is true on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Service answers free-text product queries from both vector indexes.
type Service struct {
	cfg      Config
	dense    QueryEmbedder
	sparse   SparseQueryEmbedder
	index    Index
	products ProductLoader
	cache    Cache
	log      logger.Logger
	tracer   *tracer.Tracer
	now      func() time.Time
}

// NewService wires the search path. cache may be nil.
func NewService(cfg Config, dense QueryEmbedder, sparse SparseQueryEmbedder, index Index, products ProductLoader, cache Cache, log logger.Logger, tr *tracer.Tracer) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if tr == nil {
		tr = tracer.NewNoop()
	}
	return &Service{
		cfg:      cfg.withDefaults(),
		dense:    dense,
		sparse:   sparse,
		index:    index,
		products: products,
		cache:    cache,
		log:      log,
		tracer:   tr,
		now:      time.Now,
	}
}

// Search returns the formatted top products for query. Query errors satisfy
// IsInvalidQuery; everything else is a backend failure.
func (s *Service) Search(ctx context.Context, query string) (*ItemList, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > s.cfg.MaxQueryLength {
		return nil, fmt.Errorf("%w: at most %d characters", ErrQueryTooLong, s.cfg.MaxQueryLength)
	}

	ctx, span := s.tracer.StartSpan(ctx, "search.Search")
	defer span.End()

	key := CacheKey(query)
	if cached, ok := s.cached(ctx, key); ok {
		s.tracer.SetAttributes(span, map[string]interface{}{"cache_hit": true})
		return cached, nil
	}

	hits, err := s.retrieve(ctx, query)
	if err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		return nil, err
	}
	if len(hits) > s.cfg.TopK {
		hits = hits[:s.cfg.TopK]
	}

	urns := make([]string, len(hits))
	for i, h := range hits {
		urns[i] = h.URN
	}
	details, err := s.products.ProductsByURN(ctx, urns)
	if err != nil {
		s.tracer.RecordErrorOnSpan(span, err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	list := Format(hits, details, s.now())
	s.tracer.SetAttributes(span, map[string]interface{}{
		"cache_hit": false,
		"results":   list.TotalResults,
	})
	s.store(ctx, key, &list)
	return &list, nil
}

// retrieve queries both indexes concurrently for twice the final size and
// fuses the rankings.
func (s *Service) retrieve(ctx context.Context, query string) ([]Hit, error) {
	candidates := s.cfg.TopK * 2
	var dense, sparse []qdrant.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vec, err := s.dense.EmbedQuery(gctx, query)
		if err != nil {
			return fmt.Errorf("dense embedding: %w", err)
		}
		dense, err = s.index.SearchDense(gctx, vec, candidates)
		if err != nil {
			return fmt.Errorf("dense search: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		vec, err := s.sparse.Embed(gctx, query)
		if err != nil {
			return fmt.Errorf("sparse embedding: %w", err)
		}
		if len(vec.Indices) == 0 {
			return nil
		}
		sparse, err = s.index.SearchSparse(gctx, vec.Indices, vec.Values, candidates)
		if err != nil {
			return fmt.Errorf("sparse search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Fuse(dense, sparse, s.cfg.RRFK, s.cfg.Alpha), nil
}

func (s *Service) cached(ctx context.Context, key string) (*ItemList, bool) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsNilError(err) {
			s.log.WarnWithContext(ctx, "search cache read failed", err, map[string]interface{}{"key": key})
		}
		return nil, false
	}
	var list ItemList
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.WarnWithContext(ctx, "discarding unreadable search cache entry", err, map[string]interface{}{"key": key})
		return nil, false
	}
	return &list, true
}

func (s *Service) store(ctx context.Context, key string, list *ItemList) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.WarnWithContext(ctx, "encoding search response for cache failed", err, nil)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
		s.log.WarnWithContext(ctx, "search cache write failed", err, map[string]interface{}{"key": key})
	}
}

// CacheKey is "search:" plus the hex SHA-256 of the trimmed query.
func CacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "search:" + hex.EncodeToString(sum[:])
}
