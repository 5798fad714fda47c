package redis

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// RedisClient wraps a go-redis client with typed helpers used by the
// search cache.
type RedisClient struct {
	client redis.UniversalClient
	cfg    Config
	log    logger.Logger

	closeOnce sync.Once
}

// NewClient builds a client for a standalone Redis instance. The pool dials
// lazily; call Ping to verify connectivity.
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379}, log)
//	defer client.Close()
func NewClient(cfg Config, log logger.Logger) (*RedisClient, error) {
	if log == nil {
		log = logger.NewNop()
	}
	cfg = cfg.withDefaults()

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		var err error
		tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:            net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxIdleTime: cfg.IdleTimeout,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		TLSConfig:       tlsConfig,
	})

	log.Info("Redis client initialized", nil, map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return &RedisClient{client: client, cfg: cfg, log: log}, nil
}

// NewFromUniversal wraps an existing go-redis client.
func NewFromUniversal(client redis.UniversalClient, log logger.Logger) *RedisClient {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisClient{client: client, log: log}
}

func createTLSConfig(cfg TLSConfig, defaultServerName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		ServerName:         defaultServerName,
	}
	if cfg.ServerName != "" {
		tlsConfig.ServerName = cfg.ServerName
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Client returns the underlying go-redis client.
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

// Close is safe to call more than once.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.log.Info("Closing Redis client", nil)
		err = r.client.Close()
	})
	return err
}
