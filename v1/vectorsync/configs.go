package vectorsync

import "time"

// Config controls the vector upsert pipeline.
type Config struct {
	// PageSize is the number of products fetched and indexed per step.
	PageSize int `yaml:"page_size" env:"VECTOR_PAGE_SIZE"`

	// FetchRetryDelay is the pause before a failed page fetch is retried.
	// Each page is fetched at most twice.
	FetchRetryDelay time.Duration `yaml:"fetch_retry_delay" env:"VECTOR_FETCH_RETRY_DELAY"`
}

// DefaultPageSize matches the largest batch the embedding services accept.
const DefaultPageSize = 96

func DefaultConfig() Config {
	return Config{PageSize: DefaultPageSize, FetchRetryDelay: time.Second}
}
