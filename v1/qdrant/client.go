package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// Thin wrapper around the official Qdrant Go client that owns the
// product collections: one dense collection (embedding per product)
// and one sparse collection (BM25 vector per product).
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Create both collections if missing.
//   • Upsert, search and delete product points.
//

// QdrantClient wraps the official Qdrant Go client.
type QdrantClient struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

const (
	defaultBatchSize = 200 // chunk size for upserts
	defaultPort      = 6334
)

// NewQdrantClient constructs a client and validates connectivity via a
// health check, so an unreachable server fails startup.
//
// Example:
//
//	client, _ := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	log.Printf("[Qdrant] Connecting to endpoint: %s:%d", p.Config.Endpoint, p.Config.Port)

	port := p.Config.Port
	if port == 0 {
		port = defaultPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   p.Config.Endpoint,
		Port:                   port,
		APIKey:                 p.Config.ApiKey,
		SkipCompatibilityCheck: !p.Config.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:     client,
		cfg:     p.Config,
		started: true,
	}

	if err := qc.healthCheck(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return qc, nil
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck calls the server health endpoint with a short timeout.
func (c *QdrantClient) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, endpoint=%s)", resp.Title, resp.Version, c.cfg.Endpoint)
	return nil
}

// Client returns the underlying Qdrant SDK client.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Config returns the configuration the client was built with.
func (c *QdrantClient) Config() *Config {
	return c.cfg
}

// requestContext bounds ctx by the configured timeout.
func (c *QdrantClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close releases the gRPC connection.
func (c *QdrantClient) Close() error {
	if !c.started {
		return nil
	}
	c.started = false
	log.Println("[Qdrant] closing client")
	return c.api.Close()
}
