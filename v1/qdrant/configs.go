package qdrant

import (
	"time"
)

// Config holds connection settings and the two collections the catalog
// indexes into.
//
// Example:
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "qdrant.internal"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Collection holding one dense embedding per product.
	DenseCollection string `yaml:"dense_collection" env:"DENSE_COLLECTION"`

	// Collection holding one BM25 sparse vector per product.
	SparseCollection string `yaml:"sparse_collection" env:"SPARSE_COLLECTION"`

	// Size of the dense vectors; must match the embedding model.
	DenseDimension int `yaml:"dense_dimension" env:"EMBEDDING_DIMENSION"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		DenseCollection:    "products-dense",
		SparseCollection:   "products-sparse",
		DenseDimension:     1536,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}
