package ingest

import "time"

// Config controls scheduled ingestion. No sources disables the scheduler.
type Config struct {
	Sources []Source `yaml:"sources"`

	// Interval between scheduled runs. Zero runs only at startup.
	Interval time.Duration `yaml:"interval" env:"INGEST_INTERVAL"`

	OnStartup bool `yaml:"on_startup" env:"INGEST_ON_STARTUP"`

	// MaxAttempts bounds how often a failing step is tried.
	MaxAttempts int `yaml:"max_attempts" env:"INGEST_MAX_ATTEMPTS"`

	RetryDelay time.Duration `yaml:"retry_delay" env:"INGEST_RETRY_DELAY"`

	// HTTPTimeout applies to every registry, index and shard request.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"INGEST_HTTP_TIMEOUT"`
}

// Source is one CMP registry.
type Source struct {
	Name     string `yaml:"name"`
	Registry string `yaml:"registry" env:"INGEST_REGISTRY_URL"`

	// Organizations filters the registry by organization URN. Empty keeps all.
	Organizations []string `yaml:"organizations" env:"INGEST_ORGANIZATIONS"`
}

func DefaultConfig() Config {
	return Config{
		Interval:    6 * time.Hour,
		MaxAttempts: 3,
		RetryDelay:  5 * time.Minute,
		HTTPTimeout: 30 * time.Second,
	}
}
