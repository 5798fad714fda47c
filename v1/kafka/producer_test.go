package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(DefaultConfig(), w, logger.NewNop(), nil)

	payload := map[string]interface{}{"organization_id": "org-1", "product_ids": []string{"a", "b"}}
	require.NoError(t, p.Publish(context.Background(), "org-1", payload, map[string]string{"event-type": "catalog.upserted"}))

	require.Len(t, w.written, 1)
	msg := w.written[0]
	assert.Equal(t, "org-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "catalog.upserted", string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "org-1", decoded["organization_id"])
}

func TestProducer_PublishErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newProducer(DefaultConfig(), w, logger.NewNop(), nil)

	err := p.Publish(context.Background(), "k", map[string]string{"a": "b"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")

	err = p.Publish(context.Background(), "k", make(chan int), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode payload")
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(DefaultConfig(), w, logger.NewNop(), nil)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewProducer_Validation(t *testing.T) {
	_, err := NewProducer(Config{Topic: "t"}, nil, nil)
	assert.Error(t, err)

	_, err = NewProducer(Config{Brokers: []string{"b:9092"}}, nil, nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.CompressionCodec = "brotli"
	_, err = NewProducer(cfg, nil, nil)
	assert.Error(t, err)

	cfg.CompressionCodec = "zstd"
	p, err := NewProducer(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxAttempts, p.cfg.MaxAttempts)
}

func TestCreateSASLMechanism(t *testing.T) {
	m, err := createSASLMechanism(SASLConfig{Mechanism: "PLAIN", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", m.Name())

	m, err = createSASLMechanism(SASLConfig{Mechanism: "SCRAM-SHA-512", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "SCRAM-SHA-512", m.Name())

	_, err = createSASLMechanism(SASLConfig{Mechanism: "GSSAPI"})
	assert.Error(t, err)
}
