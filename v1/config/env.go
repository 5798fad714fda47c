package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/discovery/v1/ingest"
)

// env reads typed values and remembers every parse failure so they can be
// reported together.
type env struct {
	errs []error
}

func (e *env) str(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func (e *env) int(key string, dst *int) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func (e *env) uint(key string, dst *uint) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = uint(n)
}

func (e *env) int64(key string, dst *int64) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func (e *env) bool(key string, dst *bool) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = b
}

// duration accepts Go durations ("15m") and plain integers as seconds.
func (e *env) duration(key string, dst *time.Duration) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}

// list splits a comma-separated value, dropping empty items.
func (e *env) list(key string, dst *[]string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func (e *env) err() error {
	return errors.Join(e.errs...)
}

// lookup treats empty values as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (c *Config) applyEnv() error {
	e := &env{}

	e.str("LOG_LEVEL", &c.Logger.Level)
	e.bool("LOG_ENABLE_TRACING", &c.Logger.EnableTracing)
	for _, name := range []*string{&c.Logger.ServiceName, &c.Metrics.ServiceName, &c.Tracer.ServiceName} {
		e.str("SERVICE_NAME", name)
	}
	e.str("METRICS_ADDRESS", &c.Metrics.Address)
	e.bool("METRICS_DEFAULT_COLLECTORS", &c.Metrics.EnableDefaultCollectors)
	e.str("APP_ENV", &c.Tracer.AppEnv)
	e.bool("OTEL_EXPORT_ENABLED", &c.Tracer.EnableExport)

	pg := &c.Postgres
	e.str("DATABASE_HOST", &pg.Connection.Host)
	e.str("DATABASE_PORT", &pg.Connection.Port)
	e.str("DATABASE_USER", &pg.Connection.User)
	e.str("DATABASE_PASSWORD", &pg.Connection.Password)
	e.str("DATABASE_NAME", &pg.Connection.DbName)
	e.str("DATABASE_SSLMODE", &pg.Connection.SSLMode)
	e.int("DATABASE_MAX_OPEN_CONNS", &pg.ConnectionDetails.MaxOpenConns)
	e.int("DATABASE_MAX_IDLE_CONNS", &pg.ConnectionDetails.MaxIdleConns)
	e.duration("DATABASE_CONN_MAX_LIFETIME", &pg.ConnectionDetails.ConnMaxLifetime)

	e.int("CATALOG_BULK_THRESHOLD", &c.Catalog.BulkThreshold)
	e.bool("CATALOG_AUTO_MIGRATE", &c.Catalog.AutoMigrate)

	q := c.Qdrant
	e.str("QDRANT_ENDPOINT", &q.Endpoint)
	e.int("QDRANT_PORT", &q.Port)
	e.str("QDRANT_API_KEY", &q.ApiKey)
	e.str("DENSE_COLLECTION", &q.DenseCollection)
	e.str("SPARSE_COLLECTION", &q.SparseCollection)
	e.duration("QDRANT_TIMEOUT", &q.Timeout)
	e.bool("QDRANT_CHECK_COMPATIBILITY", &q.CheckCompatibility)

	emb := c.Embedding
	e.str("EMBEDDING_ENDPOINT", &emb.Endpoint)
	e.str("EMBEDDING_SERVICE_TOKEN", &emb.ServiceToken)
	e.str("EMBEDDING_MODEL", &emb.Model)
	e.int("EMBEDDING_DIMENSION", &emb.Dimension)
	e.int("EMBEDDING_HTTP_TIMEOUT_SECONDS", &emb.HTTPTimeoutS)
	e.int("EMBEDDING_BATCH_SIZE", &emb.BatchSize)
	// The dense collection is sized from the embedding model.
	q.DenseDimension = emb.Dimension

	sp := c.SparseEmbedding
	e.str("SPARSE_EMBEDDING_ENDPOINT", &sp.Endpoint)
	e.str("SPARSE_EMBEDDING_SERVICE_TOKEN", &sp.ServiceToken)
	e.str("SPARSE_EMBEDDING_LANGUAGE", &sp.Language)
	e.int("SPARSE_EMBEDDING_AVERAGE_WORD_COUNT", &sp.AverageWordCount)
	e.int("SPARSE_EMBEDDING_HTTP_TIMEOUT_SECONDS", &sp.HTTPTimeoutS)

	e.int("VECTOR_PAGE_SIZE", &c.VectorSync.PageSize)
	e.duration("VECTOR_FETCH_RETRY_DELAY", &c.VectorSync.FetchRetryDelay)
	e.int("SEARCH_TOP_K", &c.Search.TopK)
	e.duration("SEARCH_CACHE_TTL", &c.Search.CacheTTL)

	r := &c.Redis
	e.str("REDIS_HOST", &r.Host)
	e.int("REDIS_PORT", &r.Port)
	e.str("REDIS_USERNAME", &r.Username)
	e.str("REDIS_PASSWORD", &r.Password)
	e.int("REDIS_DB", &r.DB)
	e.int("REDIS_POOL_SIZE", &r.PoolSize)
	e.int("REDIS_MAX_RETRIES", &r.MaxRetries)
	e.duration("REDIS_DIAL_TIMEOUT", &r.DialTimeout)
	e.duration("REDIS_READ_TIMEOUT", &r.ReadTimeout)
	e.bool("REDIS_TLS_ENABLED", &r.TLS.Enabled)
	e.str("REDIS_TLS_CA_CERT_PATH", &r.TLS.CACertPath)

	mq := &c.Rabbit
	e.str("RABBITMQ_HOST", &mq.Connection.Host)
	e.uint("RABBITMQ_PORT", &mq.Connection.Port)
	e.str("RABBITMQ_USER", &mq.Connection.User)
	e.str("RABBITMQ_PASSWORD", &mq.Connection.Password)
	e.bool("RABBITMQ_SSL_ENABLED", &mq.Connection.IsSSLEnabled)
	e.bool("RABBITMQ_USE_CERT", &mq.Connection.UseCert)
	e.str("RABBITMQ_CA_CERT_PATH", &mq.Connection.CACertPath)
	e.str("RABBITMQ_CLIENT_CERT_PATH", &mq.Connection.ClientCertPath)
	e.str("RABBITMQ_CLIENT_KEY_PATH", &mq.Connection.ClientKeyPath)
	e.str("RABBITMQ_SERVER_NAME", &mq.Connection.ServerName)
	e.str("RABBITMQ_EXCHANGE", &mq.Channel.ExchangeName)
	e.str("RABBITMQ_EXCHANGE_TYPE", &mq.Channel.ExchangeType)
	e.str("RABBITMQ_ROUTING_KEY", &mq.Channel.RoutingKey)
	e.str("RABBITMQ_VECTOR_QUEUE", &mq.Channel.QueueName)
	e.int("RABBITMQ_RECONNECT_DELAY_MS", &mq.Channel.DelayToReconnect)
	e.int("RABBITMQ_PREFETCH", &mq.Channel.PrefetchCount)
	e.bool("RABBITMQ_IS_CONSUMER", &mq.Channel.IsConsumer)
	e.str("RABBITMQ_DLX", &mq.DeadLetter.ExchangeName)
	e.str("RABBITMQ_DLQ", &mq.DeadLetter.QueueName)
	e.str("RABBITMQ_DLQ_ROUTING_KEY", &mq.DeadLetter.RoutingKey)
	e.int("RABBITMQ_DLQ_TTL", &mq.DeadLetter.Ttl)

	k := &c.Kafka
	e.list("KAFKA_BROKERS", &k.Brokers)
	e.str("KAFKA_CATALOG_TOPIC", &k.Topic)
	e.int("KAFKA_MAX_ATTEMPTS", &k.MaxAttempts)
	e.duration("KAFKA_WRITE_TIMEOUT", &k.WriteTimeout)
	e.duration("KAFKA_BATCH_TIMEOUT", &k.BatchTimeout)
	e.str("KAFKA_COMPRESSION", &k.CompressionCodec)
	e.bool("KAFKA_TLS_ENABLED", &k.TLS.Enabled)
	e.str("KAFKA_TLS_CA_CERT_PATH", &k.TLS.CACertPath)
	e.str("KAFKA_TLS_CLIENT_CERT_PATH", &k.TLS.ClientCertPath)
	e.str("KAFKA_TLS_CLIENT_KEY_PATH", &k.TLS.ClientKeyPath)
	e.bool("KAFKA_TLS_INSECURE_SKIP_VERIFY", &k.TLS.InsecureSkipVerify)
	e.bool("KAFKA_SASL_ENABLED", &k.SASL.Enabled)
	e.str("KAFKA_SASL_MECHANISM", &k.SASL.Mechanism)
	e.str("KAFKA_SASL_USERNAME", &k.SASL.Username)
	e.str("KAFKA_SASL_PASSWORD", &k.SASL.Password)

	m := &c.MinIO.Connection
	e.str("MINIO_ENDPOINT", &m.Endpoint)
	e.str("MINIO_ACCESS_KEY", &m.AccessKeyID)
	e.str("MINIO_SECRET_KEY", &m.SecretAccessKey)
	e.bool("MINIO_USE_SSL", &m.UseSSL)
	e.str("MINIO_REGION", &m.Region)
	e.str("MINIO_FEED_BUCKET", &m.BucketName)
	e.bool("MINIO_CREATE_BUCKET", &m.AccessBucketCreation)

	in := &c.Ingest
	e.duration("INGEST_INTERVAL", &in.Interval)
	e.bool("INGEST_ON_STARTUP", &in.OnStartup)
	e.int("INGEST_MAX_ATTEMPTS", &in.MaxAttempts)
	e.duration("INGEST_RETRY_DELAY", &in.RetryDelay)
	e.duration("INGEST_HTTP_TIMEOUT", &in.HTTPTimeout)
	// A registry from the environment replaces the sources of the file.
	src := ingest.Source{Name: "env"}
	e.str("INGEST_REGISTRY_URL", &src.Registry)
	e.list("INGEST_ORGANIZATIONS", &src.Organizations)
	if src.Registry != "" {
		in.Sources = []ingest.Source{src}
	}

	h := &c.HTTP
	e.str("HTTP_ADDRESS", &h.Address)
	e.list("CORS_ALLOWED_ORIGINS", &h.AllowedOrigins)
	e.int64("HTTP_MAX_BODY_BYTES", &h.MaxBodyBytes)
	e.str("GIN_MODE", &h.Mode)

	return e.err()
}
