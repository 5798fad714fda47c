package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing dense embeddings.
//
// It hides the provider details (inference endpoint, HTTP, batching) from
// the application layer.
type Client struct {
	provider  Provider
	model     string
	dimension int
	batchSize int
}

// NewClient validates cfg and builds the inference provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}
	return NewClientWithProvider(p, cfg), nil
}

// NewClientWithProvider builds a Client around an existing provider.
func NewClientWithProvider(p Provider, cfg *Config) *Client {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 96
	}
	return &Client{provider: p, model: cfg.Model, dimension: cfg.Dimension, batchSize: batch}
}

// Embed returns one float32 vector per text, in order. Texts are sent in
// chunks of the configured batch size.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))
		vectors, err := c.provider.Create(ctx, c.model, texts[start:end]...)
		if err != nil {
			return nil, fmt.Errorf("embedding: batch [%d:%d]: %w", start, end, err)
		}
		for i, v := range vectors {
			if c.dimension > 0 && len(v) != c.dimension {
				return nil, fmt.Errorf("embedding: vector %d has dimension %d, want %d", start+i, len(v), c.dimension)
			}
			out = append(out, toFloat32(v))
		}
	}
	return out, nil
}

// EmbedQuery embeds a single search query.
func (c *Client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Close releases idle HTTP connections held by the provider.
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
