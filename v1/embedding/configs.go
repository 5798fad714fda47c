package embedding

import (
	"fmt"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /embeddings appended). The provider appends paths
// automatically, so callers only need to supply the host base URL.

type Config struct {
	Endpoint     string `yaml:"endpoint" env:"EMBEDDING_ENDPOINT"`
	ServiceToken string `yaml:"service_token" env:"EMBEDDING_SERVICE_TOKEN"`
	Model        string `yaml:"model" env:"EMBEDDING_MODEL"`
	// Dimension is the expected vector length; responses of another length
	// are rejected. Zero disables the check.
	Dimension    int `yaml:"dimension" env:"EMBEDDING_DIMENSION"`
	HTTPTimeoutS int `yaml:"http_timeout_seconds" env:"EMBEDDING_HTTP_TIMEOUT_SECONDS"`
	// BatchSize caps the number of texts sent in one request.
	BatchSize int `yaml:"batch_size" env:"EMBEDDING_BATCH_SIZE"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:        "text-embedding-3-small",
		Dimension:    1536,
		HTTPTimeoutS: 30,
		BatchSize:    96,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.ServiceToken == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_SERVICE_TOKEN")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	return nil
}
