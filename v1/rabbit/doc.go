// Package rabbit carries vector-sync job requests over RabbitMQ.
//
// # Overview
//
// RabbitClient wraps one AMQP connection and channel. Consumers
// (Channel.IsConsumer) declare a durable exchange, queue and binding, plus an
// optional dead-letter exchange and queue; publishers only open a channel.
// A background RetryConnection loop re-dials with the same configuration
// when the broker drops the connection, and Consume re-subscribes
// transparently.
//
// # Publishing
//
//	err := client.Publish(ctx, body, map[string]interface{}{"traceparent": tp})
//
// Messages are persistent and carry Channel.ContentType.
//
// # Consuming
//
//	wg := &sync.WaitGroup{}
//	for msg := range client.Consume(ctx, wg) {
//		if err := handle(msg.Body()); err != nil {
//			_ = msg.NackMsg(false) // dead-lettered when configured
//			continue
//		}
//		_ = msg.AckMsg()
//	}
//	wg.Wait()
//
// # Configuration
//
// Connection settings come from RABBITMQ_HOST, RABBITMQ_PORT, RABBITMQ_USER
// and RABBITMQ_PASSWORD; the job queue from RABBITMQ_VECTOR_QUEUE. TLS is
// enabled with RABBITMQ_SSL_ENABLED, mutual TLS with RABBITMQ_USE_CERT and
// the certificate paths.
//
// # Fx
//
// FXModule provides *RabbitClient and Client from a Config, with optional
// logger.Logger and metrics.Recorder. The lifecycle hook starts the reconnect
// loop and performs a graceful shutdown.
package rabbit
