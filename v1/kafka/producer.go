package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Publish JSON-encodes payload and writes it under key. Messages with the
// same key land on the same partition, so per-key order is preserved.
func (p *Producer) Publish(ctx context.Context, key string, payload interface{}, headers map[string]string) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: encode payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.ObserveMessage("kafka", "publish", "error")
		return fmt.Errorf("kafka: write to %s: %w", p.cfg.Topic, err)
	}
	p.metrics.ObserveMessage("kafka", "publish", "success")
	return nil
}
