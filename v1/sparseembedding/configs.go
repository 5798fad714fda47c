package sparseembedding

import "fmt"

type Config struct {
	Endpoint     string `yaml:"endpoint" env:"SPARSE_EMBEDDING_ENDPOINT"`
	ServiceToken string `yaml:"service_token" env:"SPARSE_EMBEDDING_SERVICE_TOKEN"`
	// Language is passed to the service as-is; empty lets it detect the language.
	Language         string `yaml:"language" env:"SPARSE_EMBEDDING_LANGUAGE"`
	AverageWordCount int    `yaml:"average_word_count" env:"SPARSE_EMBEDDING_AVERAGE_WORD_COUNT"`
	HTTPTimeoutS     int    `yaml:"http_timeout_seconds" env:"SPARSE_EMBEDDING_HTTP_TIMEOUT_SECONDS"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPTimeoutS: 30,
	}
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("sparseembedding: missing SPARSE_EMBEDDING_ENDPOINT")
	}
	if c.AverageWordCount < 0 {
		return fmt.Errorf("sparseembedding: average word count must not be negative")
	}
	return nil
}
