package httpapi

import "time"

// Config holds the HTTP listener settings.
type Config struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS"`

	// AllowedOrigins for CORS; "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`

	// MaxBodyBytes caps upsert request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`

	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode" env:"GIN_MODE"`
}

const (
	DefaultAddress         = ":8000"
	DefaultMaxBodyBytes    = 32 << 20
	DefaultShutdownTimeout = 15 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Address:           DefaultAddress,
		AllowedOrigins:    []string{"*"},
		MaxBodyBytes:      DefaultMaxBodyBytes,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Mode:              "release",
	}
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}
