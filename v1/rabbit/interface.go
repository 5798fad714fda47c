package rabbit

import (
	"context"
	"sync"
)

// Client is implemented by *RabbitClient.
type Client interface {
	// Publish sends msg to the configured exchange and routing key.
	Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error

	// Consume delivers messages from the configured queue until ctx is done
	// or the client shuts down. The returned channel is closed on exit.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	GracefulShutdown()
}

// Message is one delivery. It must be acked or nacked exactly once.
type Message interface {
	AckMsg() error

	// NackMsg rejects the message. Without requeue it is dead-lettered when
	// a dead-letter exchange is configured, and dropped otherwise.
	NackMsg(requeue bool) error

	Body() []byte
	Header() map[string]interface{}
}
