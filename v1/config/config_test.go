package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/discovery/v1/httpapi"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/search"
)

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "discovery", cfg.Logger.ServiceName)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
	assert.Equal(t, "localhost", cfg.Postgres.Connection.Host)
	assert.Equal(t, search.DefaultTopK, cfg.Search.TopK)
	assert.Equal(t, httpapi.DefaultAddress, cfg.HTTP.Address)
	require.NotNil(t, cfg.Qdrant)
	require.NotNil(t, cfg.Embedding)
	assert.Equal(t, cfg.Embedding.Dimension, cfg.Qdrant.DenseDimension)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("SERVICE_NAME", "discovery-eu")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "90")
	t.Setenv("SEARCH_CACHE_TTL", "2m")
	t.Setenv("SEARCH_TOP_K", "25")
	t.Setenv("EMBEDDING_DIMENSION", "768")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("RABBITMQ_PORT", "5673")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("HTTP_MAX_BODY_BYTES", "1024")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "discovery-eu", cfg.Logger.ServiceName)
	assert.Equal(t, "discovery-eu", cfg.Metrics.ServiceName)
	assert.Equal(t, "discovery-eu", cfg.Tracer.ServiceName)
	assert.Equal(t, "db.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, 90*time.Second, cfg.Postgres.ConnectionDetails.ConnMaxLifetime)
	assert.Equal(t, 2*time.Minute, cfg.Search.CacheTTL)
	assert.Equal(t, 25, cfg.Search.TopK)
	assert.Equal(t, 768, cfg.Qdrant.DenseDimension)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, uint(5673), cfg.Rabbit.Connection.Port)
	assert.True(t, cfg.MinIO.Connection.UseSSL)
	assert.Equal(t, int64(1024), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, "localhost", cfg.Redis.Host, "empty values keep the default")
}

func TestLoadReportsEveryMalformedValue(t *testing.T) {
	chdir(t)
	t.Setenv("SEARCH_TOP_K", "ten")
	t.Setenv("MINIO_USE_SSL", "maybe")
	t.Setenv("SEARCH_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_TOP_K")
	assert.Contains(t, err.Error(), "MINIO_USE_SSL")
	assert.Contains(t, err.Error(), "SEARCH_CACHE_TTL")
}

func TestLoadDotEnvAndFile(t *testing.T) {
	dir := chdir(t)

	yml := filepath.Join(dir, "discovery.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`
search:
  top_k: 40
  alpha: 0.7
qdrant:
  dense_collection: products-dense-v2
http:
  allowed_origins: ["https://shop.example.com"]
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CONFIG_FILE="+yml+"\nSEARCH_TOP_K=50\nDATABASE_NAME=catalog\n"), 0o600))
	t.Setenv("DATABASE_NAME", "from-env")
	t.Cleanup(func() {
		_ = os.Unsetenv("CONFIG_FILE")
		_ = os.Unsetenv("SEARCH_TOP_K")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Search.TopK, "environment wins over the file")
	assert.Equal(t, 0.7, cfg.Search.Alpha)
	assert.Equal(t, "products-dense-v2", cfg.Qdrant.DenseCollection)
	assert.Equal(t, qdrant.DefaultConfig().SparseCollection, cfg.Qdrant.SparseCollection)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "from-env", cfg.Postgres.Connection.DbName, ".env does not override the process environment")
}

func TestLoadIngestSources(t *testing.T) {
	dir := chdir(t)

	yml := filepath.Join(dir, "discovery.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`
ingest:
  on_startup: true
  interval: 1h
  sources:
    - name: acme
      registry: https://github.com/acme/cmp/blob/main/registry.json
      organizations: ["urn:cmp:org:acme"]
`), 0o600))
	t.Setenv("CONFIG_FILE", yml)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Ingest.OnStartup)
	assert.Equal(t, time.Hour, cfg.Ingest.Interval)
	assert.Equal(t, 3, cfg.Ingest.MaxAttempts)
	require.Len(t, cfg.Ingest.Sources, 1)
	assert.Equal(t, []string{"urn:cmp:org:acme"}, cfg.Ingest.Sources[0].Organizations)

	t.Setenv("INGEST_REGISTRY_URL", "https://registry.example.com/registry.json")
	t.Setenv("INGEST_ORGANIZATIONS", "urn:cmp:org:a,urn:cmp:org:b")
	t.Setenv("INGEST_RETRY_DELAY", "30")

	cfg, err = Load()
	require.NoError(t, err)
	require.Len(t, cfg.Ingest.Sources, 1)
	assert.Equal(t, "https://registry.example.com/registry.json", cfg.Ingest.Sources[0].Registry)
	assert.Equal(t, []string{"urn:cmp:org:a", "urn:cmp:org:b"}, cfg.Ingest.Sources[0].Organizations)
	assert.Equal(t, 30*time.Second, cfg.Ingest.RetryDelay)
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t)
	t.Setenv("CONFIG_FILE", "/nonexistent/discovery.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestFXModuleProvidesSections(t *testing.T) {
	chdir(t)
	t.Setenv("SEARCH_TOP_K", "7")

	var (
		s search.Config
		q *qdrant.Config
		h httpapi.Config
	)
	app := fxtest.New(t, FXModule, fx.Populate(&s, &q, &h))
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, 7, s.TopK)
	require.NotNil(t, q)
	assert.Equal(t, httpapi.DefaultAddress, h.Address)
}
