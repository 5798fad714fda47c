package rabbit

// Config defines the top-level configuration structure for the RabbitMQ client.
// It contains the sections for establishing connections, setting up channels
// and configuring dead-letter behavior.
type Config struct {
	// Connection contains the settings needed to establish a connection to the RabbitMQ server
	Connection Connection `yaml:"connection"`

	// Channel contains configuration for exchanges, queues, and message routing
	Channel Channel `yaml:"channel"`

	// DeadLetter contains configuration for the dead-letter exchange and queue
	// used for handling failed messages
	DeadLetter DeadLetter `yaml:"dead_letter"`
}

// Connection contains the configuration parameters needed to establish
// a connection to a RabbitMQ server, including authentication and TLS settings.
type Connection struct {
	Host     string `yaml:"host" env:"RABBITMQ_HOST"`
	Port     uint   `yaml:"port" env:"RABBITMQ_PORT"`
	User     string `yaml:"user" env:"RABBITMQ_USER"`
	Password string `yaml:"password" env:"RABBITMQ_PASSWORD"`

	// IsSSLEnabled switches the scheme to amqps.
	IsSSLEnabled bool `yaml:"is_ssl_enabled" env:"RABBITMQ_SSL_ENABLED"`

	// UseCert sends a client certificate for mutual TLS. Requires IsSSLEnabled.
	UseCert        bool   `yaml:"use_cert" env:"RABBITMQ_USE_CERT"`
	CACertPath     string `yaml:"ca_cert_path" env:"RABBITMQ_CA_CERT_PATH"`
	ClientCertPath string `yaml:"client_cert_path" env:"RABBITMQ_CLIENT_CERT_PATH"`
	ClientKeyPath  string `yaml:"client_key_path" env:"RABBITMQ_CLIENT_KEY_PATH"`

	// ServerName should match a CN or SAN in the server's certificate.
	ServerName string `yaml:"server_name" env:"RABBITMQ_SERVER_NAME"`
}

// Channel contains configuration for AMQP channels, exchanges, queues, and bindings.
type Channel struct {
	ExchangeName string `yaml:"exchange_name" env:"RABBITMQ_EXCHANGE"`

	// ExchangeType is one of "direct", "fanout", "topic", "headers".
	ExchangeType string `yaml:"exchange_type" env:"RABBITMQ_EXCHANGE_TYPE"`

	RoutingKey string `yaml:"routing_key" env:"RABBITMQ_ROUTING_KEY"`

	// QueueName is the vector-sync job queue.
	QueueName string `yaml:"queue_name" env:"RABBITMQ_VECTOR_QUEUE"`

	// DelayToReconnect is the wait in milliseconds between reconnection attempts.
	DelayToReconnect int `yaml:"delay_to_reconnect" env:"RABBITMQ_RECONNECT_DELAY_MS"`

	// PrefetchCount limits unacknowledged deliveries per consumer. 0 means no limit.
	PrefetchCount int `yaml:"prefetch_count" env:"RABBITMQ_PREFETCH"`

	// IsConsumer makes the client declare the exchange, queue and binding.
	IsConsumer bool `yaml:"is_consumer" env:"RABBITMQ_IS_CONSUMER"`

	ContentType string `yaml:"content_type"`
}

// DeadLetter contains configuration for dead-letter handling. Messages that
// are rejected without requeue or exceed Ttl end up in QueueName.
type DeadLetter struct {
	ExchangeName string `yaml:"exchange_name" env:"RABBITMQ_DLX"`
	QueueName    string `yaml:"queue_name" env:"RABBITMQ_DLQ"`
	RoutingKey   string `yaml:"routing_key" env:"RABBITMQ_DLQ_ROUTING_KEY"`

	// Ttl is the message time-to-live in seconds. 0 disables dead-lettering.
	Ttl int `yaml:"ttl" env:"RABBITMQ_DLQ_TTL"`
}

// DefaultConfig returns a consumer configuration for the vector-sync queue
// on a local broker.
func DefaultConfig() Config {
	return Config{
		Connection: Connection{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Channel: Channel{
			ExchangeName:     "discovery",
			ExchangeType:     "direct",
			RoutingKey:       "vectorsync",
			QueueName:        "vectorsync",
			DelayToReconnect: 1000,
			PrefetchCount:    1,
			IsConsumer:       true,
			ContentType:      "application/json",
		},
	}
}
