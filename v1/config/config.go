package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
	"github.com/Aleph-Alpha/discovery/v1/embedding"
	"github.com/Aleph-Alpha/discovery/v1/httpapi"
	"github.com/Aleph-Alpha/discovery/v1/ingest"
	"github.com/Aleph-Alpha/discovery/v1/kafka"
	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/minio"
	"github.com/Aleph-Alpha/discovery/v1/postgres"
	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/rabbit"
	"github.com/Aleph-Alpha/discovery/v1/redis"
	"github.com/Aleph-Alpha/discovery/v1/search"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
	"github.com/Aleph-Alpha/discovery/v1/vectorsync"
)

// Config is the configuration of every component of the service.
type Config struct {
	Logger  logger.Config  `yaml:"logger"`
	Metrics metrics.Config `yaml:"metrics"`
	Tracer  tracer.Config  `yaml:"tracer"`

	Postgres postgres.Config `yaml:"database"`
	Catalog  catalog.Config  `yaml:"catalog"`

	Qdrant          *qdrant.Config          `yaml:"qdrant"`
	Embedding       *embedding.Config       `yaml:"embedding"`
	SparseEmbedding *sparseembedding.Config `yaml:"sparse_embedding"`
	VectorSync      vectorsync.Config       `yaml:"vector_sync"`
	Search          search.Config           `yaml:"search"`

	Redis  redis.Config  `yaml:"redis"`
	Rabbit rabbit.Config `yaml:"rabbit"`
	Kafka  kafka.Config  `yaml:"kafka"`
	MinIO  minio.Config  `yaml:"minio"`

	Ingest ingest.Config `yaml:"ingest"`

	HTTP httpapi.Config `yaml:"http"`
}

// Defaults returns a configuration that runs against local services.
func Defaults() *Config {
	return &Config{
		Logger:  logger.Config{Level: logger.Info, ServiceName: "discovery", EnableTracing: true},
		Metrics: metrics.Config{Address: ":9090", ServiceName: "discovery", EnableDefaultCollectors: true},
		Tracer:  tracer.Config{ServiceName: "discovery", AppEnv: "development"},
		Postgres: postgres.Config{Connection: postgres.Connection{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			DbName:  "discovery",
			SSLMode: "disable",
		}},
		Catalog:         catalog.DefaultConfig(),
		Qdrant:          qdrant.DefaultConfig(),
		Embedding:       embedding.DefaultConfig(),
		SparseEmbedding: sparseembedding.DefaultConfig(),
		VectorSync:      vectorsync.DefaultConfig(),
		Search:          search.DefaultConfig(),
		Redis:           redis.DefaultConfig(),
		Rabbit:          rabbit.DefaultConfig(),
		Kafka:           kafka.DefaultConfig(),
		MinIO:           minio.DefaultConfig(),
		Ingest:          ingest.DefaultConfig(),
		HTTP:            httpapi.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE when set, then environment variables. A .env file in the
// working directory is loaded first when present; variables already set
// in the environment win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
