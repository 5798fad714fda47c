package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON-encoded messages to one topic.
type Producer struct {
	cfg     Config
	writer  messageWriter
	log     logger.Logger
	metrics metrics.Recorder
}

// NewProducer builds a synchronous writer for cfg.Topic. No connection is
// made until the first Publish.
func NewProducer(cfg Config, log logger.Logger, rec metrics.Recorder) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	if log == nil {
		log = logger.NewNop()
	}
	cfg = cfg.withDefaults()

	w, err := newWriter(cfg, log)
	if err != nil {
		return nil, err
	}
	return newProducer(cfg, w, log, rec), nil
}

func newProducer(cfg Config, w messageWriter, log logger.Logger, rec metrics.Recorder) *Producer {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Producer{cfg: cfg, writer: w, log: log, metrics: rec}
}

func newWriter(cfg Config, log logger.Logger) (*kafka.Writer, error) {
	transport := &kafka.Transport{}

	if cfg.TLS.Enabled {
		tlsCfg, err := createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("kafka: tls: %w", err)
		}
		transport.TLS = tlsCfg
	}
	if cfg.SASL.Enabled {
		mechanism, err := createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("kafka: sasl: %w", err)
		}
		transport.SASL = mechanism
	}

	codec, err := compressionCodec(cfg.CompressionCodec)
	if err != nil {
		return nil, err
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: cfg.RequiredAcks,
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		BatchTimeout: cfg.BatchTimeout,
		Compression:  codec,
		Transport:    transport,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error("Kafka internal error", nil, map[string]interface{}{
				"error": fmt.Sprintf(msg, args...),
			})
		}),
	}, nil
}

func compressionCodec(name string) (compress.Compression, error) {
	switch name {
	case "":
		return 0, nil
	case "gzip":
		return compress.Gzip, nil
	case "snappy":
		return compress.Snappy, nil
	case "lz4":
		return compress.Lz4, nil
	case "zstd":
		return compress.Zstd, nil
	default:
		return 0, fmt.Errorf("kafka: unsupported compression codec %q", name)
	}
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
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

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	start := time.Now()
	err := p.writer.Close()
	p.log.Info("Kafka producer closed", err, map[string]interface{}{
		"topic":       p.cfg.Topic,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return err
}
