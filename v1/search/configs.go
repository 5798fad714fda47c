package search

import "time"

// Config tunes hybrid retrieval and the response cache.
type Config struct {
	// TopK is the number of products returned per query.
	TopK int `yaml:"top_k" env:"SEARCH_TOP_K"`

	// CacheTTL is how long a formatted response stays in Redis. Zero
	// disables caching.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"SEARCH_CACHE_TTL"`

	// RRFK is the rank offset k in 1/(k+rank).
	RRFK float64 `yaml:"rrf_k"`

	// Alpha weights the dense ranking; the sparse ranking gets 1-Alpha.
	Alpha float64 `yaml:"alpha"`

	MaxQueryLength int `yaml:"max_query_length"`
}

const (
	DefaultTopK           = 10
	DefaultCacheTTL       = 15 * time.Minute
	DefaultRRFK           = 60
	DefaultAlpha          = 0.5
	DefaultMaxQueryLength = 500
)

func DefaultConfig() Config {
	return Config{
		TopK:           DefaultTopK,
		CacheTTL:       DefaultCacheTTL,
		RRFK:           DefaultRRFK,
		Alpha:          DefaultAlpha,
		MaxQueryLength: DefaultMaxQueryLength,
	}
}

func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.RRFK <= 0 {
		c.RRFK = DefaultRRFK
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		c.Alpha = DefaultAlpha
	}
	if c.MaxQueryLength <= 0 {
		c.MaxQueryLength = DefaultMaxQueryLength
	}
	return c
}
