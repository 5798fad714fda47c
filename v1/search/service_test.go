package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
)

type fakeDense struct{ err error }

func (f fakeDense) EmbedQuery(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2}, nil
}

type fakeSparse struct{ vec sparseembedding.Vector }

func (f fakeSparse) Embed(context.Context, string) (sparseembedding.Vector, error) {
	return f.vec, nil
}

type fakeIndex struct {
	mu          sync.Mutex
	dense       []qdrant.SearchResult
	sparse      []qdrant.SearchResult
	topKs       []int
	sparseCalls int
}

func (f *fakeIndex) SearchDense(_ context.Context, _ []float32, topK int) ([]qdrant.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topKs = append(f.topKs, topK)
	return f.dense, nil
}

func (f *fakeIndex) SearchSparse(_ context.Context, _ []uint32, _ []float32, topK int) ([]qdrant.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topKs = append(f.topKs, topK)
	f.sparseCalls++
	return f.sparse, nil
}

type fakeLoader struct {
	requested []string
	err       error
}

func (f *fakeLoader) ProductsByURN(_ context.Context, urns []string) (map[string]*catalog.ProductDetail, error) {
	f.requested = urns
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*catalog.ProductDetail, len(urns))
	for _, u := range urns {
		out[u] = &catalog.ProductDetail{ID: u, Name: "name of " + u}
	}
	return out, nil
}

type memCache struct {
	data   map[string][]byte
	ttl    time.Duration
	getErr error
	setErr error
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return nil, goredis.Nil
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttl = ttl
	return nil
}

func newTestService(index *fakeIndex, loader *fakeLoader, cache Cache) *Service {
	cfg := DefaultConfig()
	cfg.TopK = 2
	return NewService(cfg, fakeDense{}, fakeSparse{vec: sparseembedding.Vector{Indices: []uint32{3}, Values: []float32{1}}},
		index, loader, cache, nil, nil)
}

func TestSearch_FusesAndHydrates(t *testing.T) {
	index := &fakeIndex{
		dense:  results("urn:a", "urn:b", "urn:c"),
		sparse: results("urn:c", "urn:a"),
	}
	loader := &fakeLoader{}

	list, err := newTestService(index, loader, nil).Search(context.Background(), "  red shoes ")
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4}, index.topKs)
	assert.Equal(t, []string{"urn:a", "urn:c"}, loader.requested)
	require.Equal(t, 2, list.TotalResults)
	assert.Equal(t, "urn:a", list.ItemListElement[0].Item.ID)
	assert.Equal(t, "name of urn:a", list.ItemListElement[0].Item.Name)
}

func TestSearch_InvalidQueries(t *testing.T) {
	svc := newTestService(&fakeIndex{}, &fakeLoader{}, nil)

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.True(t, IsInvalidQuery(err))

	_, err = svc.Search(context.Background(), strings.Repeat("x", 501))
	assert.ErrorIs(t, err, ErrQueryTooLong)

	_, err = svc.Search(context.Background(), strings.Repeat("ü", 500))
	assert.NoError(t, err)
}

func TestSearch_BackendErrors(t *testing.T) {
	cfg := DefaultConfig()
	svc := NewService(cfg, fakeDense{err: errors.New("http 503")}, fakeSparse{}, &fakeIndex{}, &fakeLoader{}, nil, nil, nil)

	_, err := svc.Search(context.Background(), "shoes")
	require.Error(t, err)
	assert.False(t, IsInvalidQuery(err))
	assert.Contains(t, err.Error(), "dense embedding")

	loader := &fakeLoader{err: errors.New("db down")}
	_, err = newTestService(&fakeIndex{dense: results("urn:a")}, loader, nil).Search(context.Background(), "shoes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load products")
}

func TestSearch_EmptySparseVectorSkipsSparseSearch(t *testing.T) {
	index := &fakeIndex{dense: results("urn:a")}
	svc := NewService(DefaultConfig(), fakeDense{}, fakeSparse{}, index, &fakeLoader{}, nil, nil, nil)

	list, err := svc.Search(context.Background(), "the")
	require.NoError(t, err)
	assert.Zero(t, index.sparseCalls)
	assert.Equal(t, 1, list.TotalResults)
}

func TestSearch_CachesFormattedResponse(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}}
	index := &fakeIndex{dense: results("urn:a")}
	loader := &fakeLoader{}
	svc := newTestService(index, loader, cache)

	first, err := svc.Search(context.Background(), "shoes")
	require.NoError(t, err)
	require.Contains(t, cache.data, CacheKey("shoes"))
	assert.Equal(t, DefaultCacheTTL, cache.ttl)

	index.dense = nil
	second, err := svc.Search(context.Background(), " shoes ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, index.topKs, 2, "second query must be served from cache")
}

func TestSearch_CacheFailuresAreIgnored(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}, getErr: errors.New("conn refused"), setErr: errors.New("conn refused")}
	svc := newTestService(&fakeIndex{dense: results("urn:a")}, &fakeLoader{}, cache)

	list, err := svc.Search(context.Background(), "shoes")
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalResults)
}

func TestSearch_CorruptCacheEntryIsRecomputed(t *testing.T) {
	cache := &memCache{data: map[string][]byte{CacheKey("shoes"): []byte("{not json")}}
	svc := newTestService(&fakeIndex{dense: results("urn:a")}, &fakeLoader{}, cache)

	list, err := svc.Search(context.Background(), "shoes")
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalResults)

	var stored ItemList
	require.NoError(t, json.Unmarshal(cache.data[CacheKey("shoes")], &stored))
	assert.Equal(t, 1, stored.TotalResults)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "search:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", CacheKey(""))
	assert.NotEqual(t, CacheKey("a"), CacheKey("b"))
}
