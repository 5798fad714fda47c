package rabbit

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerMessage implements Message over an AMQP delivery.
type ConsumerMessage struct {
	delivery amqp.Delivery
}

// consumeQueue forwards deliveries from queueName to the returned channel.
// When the broker closes the delivery channel (reconnect) it re-subscribes
// on the current channel. The output is closed on ctx cancellation or shutdown.
func (rb *RabbitClient) consumeQueue(ctx context.Context, wg *sync.WaitGroup, queueName string) <-chan Message {
	out := make(chan Message, 100)
	fields := map[string]interface{}{"queue": queueName}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(out)

		for {
			select {
			case <-rb.shutdownSignal:
				rb.log.InfoWithContext(ctx, "Stopping consumer due to shutdown signal", nil, fields)
				return
			case <-ctx.Done():
				rb.log.InfoWithContext(ctx, "Stopping consumer due to context cancellation", ctx.Err(), fields)
				return
			default:
			}

			rb.mu.RLock()
			deliveries, err := rb.Channel.Consume(queueName,
				"",    // consumer
				false, // autoAck
				false, // exclusive
				false, // noLocal
				false, // noWait
				nil,
			)
			rb.mu.RUnlock()
			if err != nil {
				rb.log.ErrorWithContext(ctx, "Failed to establish consumer", err, fields)
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if !rb.forward(ctx, deliveries, out) {
				return
			}
		}
	}()
	return out
}

// forward returns false when the consumer should stop, true when the
// delivery channel closed and a new subscription is needed.
func (rb *RabbitClient) forward(ctx context.Context, deliveries <-chan amqp.Delivery, out chan<- Message) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-rb.shutdownSignal:
			return false
		case d, ok := <-deliveries:
			if !ok {
				return true
			}
			rb.metrics.ObserveMessage("rabbit", "consume", "success")
			select {
			case out <- &ConsumerMessage{delivery: d}:
			case <-ctx.Done():
				_ = d.Nack(false, true)
				return false
			}
		}
	}
}

// Consume starts consuming the configured queue.
//
//	wg := &sync.WaitGroup{}
//	for msg := range client.Consume(ctx, wg) {
//		handle(msg.Body())
//		_ = msg.AckMsg()
//	}
func (rb *RabbitClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return rb.consumeQueue(ctx, wg, rb.cfg.Channel.QueueName)
}

// Publish sends msg to the configured exchange and routing key. Only the
// first headers map is used; it typically carries the trace carrier.
func (rb *RabbitClient) Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error {
	var header amqp.Table
	if len(headers) > 0 && headers[0] != nil {
		header = amqp.Table(headers[0])
	}

	rb.mu.RLock()
	err := rb.Channel.PublishWithContext(ctx,
		rb.cfg.Channel.ExchangeName,
		rb.cfg.Channel.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			Headers:      header,
			ContentType:  rb.cfg.Channel.ContentType,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         msg,
		},
	)
	rb.mu.RUnlock()

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	rb.metrics.ObserveMessage("rabbit", "publish", outcome)
	return err
}

func (m *ConsumerMessage) AckMsg() error {
	return m.delivery.Ack(false)
}

func (m *ConsumerMessage) NackMsg(requeue bool) error {
	return m.delivery.Nack(false, requeue)
}

func (m *ConsumerMessage) Body() []byte {
	return m.delivery.Body
}

func (m *ConsumerMessage) Header() map[string]interface{} {
	return m.delivery.Headers
}
