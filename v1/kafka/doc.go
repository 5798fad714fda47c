// Package kafka publishes catalog change events to Apache Kafka.
//
// Producer wraps a synchronous segmentio/kafka-go Writer bound to one
// topic. Payloads are JSON-encoded; the message key selects the partition
// (hash balancer), so events for one organization stay ordered.
//
//	p, err := kafka.NewProducer(cfg, log, rec)
//	err = p.Publish(ctx, orgID.String(), event, map[string]string{"event-type": "catalog.upserted"})
//
// TLS (optionally mutual) and SASL PLAIN / SCRAM-SHA-256 / SCRAM-SHA-512
// are configured through Config.TLS and Config.SASL. Compression is one of
// gzip, snappy, lz4 or zstd.
//
// FXModule provides *Producer and closes it on application stop, flushing
// pending writes.
package kafka
