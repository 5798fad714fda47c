package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultRequiredAcks = kafka.RequireAll
	DefaultMaxAttempts  = 10
	DefaultWriteTimeout = 10 * time.Second
	DefaultBatchTimeout = 10 * time.Millisecond
)

// Config configures the catalog event producer.
type Config struct {
	// Brokers is the bootstrap list, e.g. ["kafka-0:9092", "kafka-1:9092"].
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`

	// Topic receives catalog change events.
	Topic string `yaml:"topic" env:"KAFKA_CATALOG_TOPIC"`

	RequiredAcks kafka.RequiredAcks `yaml:"required_acks"`
	MaxAttempts  int                `yaml:"max_attempts" env:"KAFKA_MAX_ATTEMPTS"`
	WriteTimeout time.Duration      `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT"`
	BatchTimeout time.Duration      `yaml:"batch_timeout" env:"KAFKA_BATCH_TIMEOUT"`

	// CompressionCodec is one of "gzip", "snappy", "lz4", "zstd" or empty.
	CompressionCodec string `yaml:"compression_codec" env:"KAFKA_COMPRESSION"`

	TLS  TLSConfig  `yaml:"tls"`
	SASL SASLConfig `yaml:"sasl"`
}

type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" env:"KAFKA_TLS_ENABLED"`
	CACertPath         string `yaml:"ca_cert_path" env:"KAFKA_TLS_CA_CERT_PATH"`
	ClientCertPath     string `yaml:"client_cert_path" env:"KAFKA_TLS_CLIENT_CERT_PATH"`
	ClientKeyPath      string `yaml:"client_key_path" env:"KAFKA_TLS_CLIENT_KEY_PATH"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" env:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

type SASLConfig struct {
	Enabled bool `yaml:"enabled" env:"KAFKA_SASL_ENABLED"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `yaml:"mechanism" env:"KAFKA_SASL_MECHANISM"`
	Username  string `yaml:"username" env:"KAFKA_SASL_USERNAME"`
	Password  string `yaml:"password" env:"KAFKA_SASL_PASSWORD"`
}

func DefaultConfig() Config {
	return Config{
		Brokers:      []string{"localhost:9092"},
		Topic:        "catalog-events",
		RequiredAcks: DefaultRequiredAcks,
		MaxAttempts:  DefaultMaxAttempts,
		WriteTimeout: DefaultWriteTimeout,
		BatchTimeout: DefaultBatchTimeout,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	return c
}
