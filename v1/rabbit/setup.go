package rabbit

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
)

// heartbeat detects dead connections quickly.
const heartbeat = 2 * time.Second

// RabbitClient manages one connection and channel and re-establishes both
// when the broker goes away.
type RabbitClient struct {
	cfg Config

	// Channel is exposed for direct AMQP operations.
	Channel *amqp.Channel
	conn    *amqp.Connection

	// mu protects conn and Channel across reconnects.
	mu sync.RWMutex

	log     logger.Logger
	metrics metrics.Recorder

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// NewClient connects to RabbitMQ and sets up the channel. Consumers also
// declare the exchange, queue, binding and dead-letter topology.
//
// Example:
//
//	client, err := rabbit.NewClient(cfg, log, nil)
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
func NewClient(cfg Config, log logger.Logger, rec metrics.Recorder) (*RabbitClient, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}

	conn, err := newConnection(cfg)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ", err, map[string]interface{}{"host": cfg.Connection.Host})
		return nil, err
	}

	ch, err := connectToChannel(conn, cfg)
	if err != nil {
		_ = conn.Close()
		log.Error("Failed to set up RabbitMQ channel", err, nil)
		return nil, err
	}

	log.Info("Connected to RabbitMQ", nil, map[string]interface{}{
		"host":  cfg.Connection.Host,
		"queue": cfg.Channel.QueueName,
	})

	return &RabbitClient{
		cfg:            cfg,
		conn:           conn,
		Channel:        ch,
		log:            log,
		metrics:        rec,
		shutdownSignal: make(chan struct{}),
	}, nil
}

// connectToChannel opens a channel with publisher confirms. For consumers it
// declares the exchange, the optional dead-letter exchange and queue, the
// main queue and its binding, and applies the prefetch limit.
func connectToChannel(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if !cfg.Channel.IsConsumer {
		return ch, nil
	}

	if err = ch.ExchangeDeclare(cfg.Channel.ExchangeName, cfg.Channel.ExchangeType,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queueArgs, err := declareDeadLetter(ch, cfg.DeadLetter)
	if err != nil {
		return nil, err
	}

	if _, err = ch.QueueDeclare(cfg.Channel.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		queueArgs,
	); err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err = ch.QueueBind(cfg.Channel.QueueName, cfg.Channel.RoutingKey, cfg.Channel.ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	if cfg.Channel.PrefetchCount > 0 {
		if err = ch.Qos(cfg.Channel.PrefetchCount, 0, false); err != nil {
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	return ch, nil
}

// declareDeadLetter sets up the dead-letter exchange and queue and returns
// the arguments the main queue needs to route into them. It is a no-op
// unless both an exchange name and a ttl are configured.
func declareDeadLetter(ch *amqp.Channel, dl DeadLetter) (amqp.Table, error) {
	if dl.ExchangeName == "" || dl.Ttl <= 0 {
		return nil, nil
	}

	if err := ch.ExchangeDeclare(dl.ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(dl.QueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare dead letter queue: %w", err)
	}
	if err := ch.QueueBind(dl.QueueName, dl.RoutingKey, dl.ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind dead letter queue: %w", err)
	}

	return amqp.Table{
		"x-dead-letter-exchange":    dl.ExchangeName,
		"x-dead-letter-routing-key": dl.RoutingKey,
		"x-message-ttl":             dl.Ttl * 1000,
	}, nil
}

// RetryConnection watches the connection and re-dials with the same
// configuration whenever it closes, until GracefulShutdown is called.
// Run it in its own goroutine.
func (rb *RabbitClient) RetryConnection() {
	delay := time.Duration(rb.cfg.Channel.DelayToReconnect) * time.Millisecond
	if delay <= 0 {
		delay = time.Second
	}

	for {
		rb.mu.RLock()
		errChan := rb.conn.NotifyClose(make(chan *amqp.Error, 1))
		rb.mu.RUnlock()

		select {
		case <-rb.shutdownSignal:
			return
		case err := <-errChan:
			rb.log.Warn("RabbitMQ connection closed, reconnecting", err, nil)
		}

		if !rb.reconnect(delay) {
			return
		}
	}
}

// reconnect dials until it succeeds or the client shuts down.
func (rb *RabbitClient) reconnect(delay time.Duration) bool {
	for {
		select {
		case <-rb.shutdownSignal:
			return false
		default:
		}

		conn, err := newConnection(rb.cfg)
		if err != nil {
			rb.log.Error("RabbitMQ reconnection failed", err, nil)
			time.Sleep(delay)
			continue
		}

		ch, err := connectToChannel(conn, rb.cfg)
		if err != nil {
			_ = conn.Close()
			rb.log.Error("Failed to re-establish RabbitMQ channel", err, nil)
			time.Sleep(delay)
			continue
		}

		rb.mu.Lock()
		rb.conn = conn
		rb.Channel = ch
		rb.mu.Unlock()

		rb.log.Info("Reconnected to RabbitMQ", nil, nil)
		return true
	}
}

// GracefulShutdown stops the reconnect loop and consumers, then closes the
// channel and connection. Close errors are logged.
func (rb *RabbitClient) GracefulShutdown() {
	rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})

	rb.mu.Lock()
	defer rb.mu.Unlock()

	ctx := context.Background()
	rb.log.InfoWithContext(ctx, "Shutting down RabbitMQ client", nil)

	if rb.Channel != nil {
		if err := rb.Channel.Close(); err != nil {
			rb.log.WarnWithContext(ctx, "Failed to close rabbit channel", err)
		}
	}
	if rb.conn != nil && !rb.conn.IsClosed() {
		if err := rb.conn.Close(); err != nil {
			rb.log.WarnWithContext(ctx, "Failed to close rabbit connection", err)
		}
	}
}

// newConnection dials the broker: plain amqp, amqps with server
// verification, or amqps with a client certificate.
func newConnection(cfg Config) (*amqp.Connection, error) {
	amqpCfg := amqp.Config{Heartbeat: heartbeat}

	if cfg.Connection.IsSSLEnabled {
		tlsCfg, err := tlsConfig(cfg.Connection)
		if err != nil {
			return nil, err
		}
		amqpCfg.TLSClientConfig = tlsCfg
	}

	conn, err := amqp.DialConfig(amqpURL(cfg.Connection), amqpCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbit: %w", err)
	}
	return conn, nil
}

func amqpURL(c Connection) string {
	scheme := "amqp"
	if c.IsSSLEnabled {
		scheme = "amqps"
	}
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.FormatUint(uint64(c.Port), 10)),
	}
	return u.String()
}

// tlsConfig returns nil when no CA and no client certificate are configured,
// in which case the system roots are used.
func tlsConfig(c Connection) (*tls.Config, error) {
	if !c.UseCert {
		if c.ServerName == "" {
			return nil, nil
		}
		return &tls.Config{ServerName: c.ServerName}, nil
	}

	caCert, err := os.ReadFile(c.CACertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", c.CACertPath)
	}

	cert, err := tls.LoadX509KeyPair(c.ClientCertPath, c.ClientKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert: %w", err)
	}

	return &tls.Config{
		RootCAs:      pool,
		Certificates: []tls.Certificate{cert},
		ServerName:   c.ServerName,
	}, nil
}
