package sparseembedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Vector is a BM25 sparse vector with parallel indices and values.
type Vector struct {
	Indices []uint32
	Values  []float32
}

// Embedder computes BM25 sparse vectors one text at a time.
type Embedder struct {
	api              ClientWithResponsesInterface
	language         Language
	averageWordCount *int
}

func NewEmbedder(cfg *Config) (*Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.HTTPTimeoutS
	if timeout <= 0 {
		timeout = 30
	}

	opts := []ClientOption{WithHTTPClient(&http.Client{Timeout: time.Duration(timeout) * time.Second})}
	if cfg.ServiceToken != "" {
		token := cfg.ServiceToken
		opts = append(opts, WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			req.Header.Set("Authorization", "Bearer "+token)
			return nil
		}))
	}

	api, err := NewClientWithResponses(cfg.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("sparseembedding: build client: %w", err)
	}
	return NewEmbedderWithClient(api, cfg), nil
}

// NewEmbedderWithClient builds an Embedder around an existing generated client.
func NewEmbedderWithClient(api ClientWithResponsesInterface, cfg *Config) *Embedder {
	e := &Embedder{api: api, language: Language(cfg.Language)}
	if cfg.AverageWordCount > 0 {
		n := cfg.AverageWordCount
		e.averageWordCount = &n
	}
	return e
}

// Embed returns the BM25 vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) (Vector, error) {
	requestID := uuid.NewString()
	resp, err := e.api.EmbedBm25EmbedBm25PostWithResponse(ctx,
		&EmbedBm25EmbedBm25PostParams{XRequestId: &requestID},
		BM25EmbedRequest{Text: text, Language: e.language, AverageWordCount: e.averageWordCount},
	)
	if err != nil {
		return Vector{}, fmt.Errorf("sparseembedding: request %s: %w", requestID, err)
	}

	switch {
	case resp.JSON200 != nil:
		return toVector(*resp.JSON200)
	case resp.JSON422 != nil:
		return Vector{}, fmt.Errorf("sparseembedding: request %s rejected: %s", requestID, describe(resp.JSON422))
	default:
		return Vector{}, fmt.Errorf("sparseembedding: request %s: unexpected status %s", requestID, resp.Status())
	}
}

// EmbedBatch embeds each text in order, stopping at the first failure.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([]Vector, error) {
	out := make([]Vector, 0, len(texts))
	for i, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func toVector(s SparseEmbedding) (Vector, error) {
	if len(s.Indices) != len(s.Values) {
		return Vector{}, fmt.Errorf("sparseembedding: %d indices but %d values", len(s.Indices), len(s.Values))
	}
	v := Vector{Indices: make([]uint32, len(s.Indices)), Values: s.Values}
	for i, idx := range s.Indices {
		if idx < 0 {
			return Vector{}, fmt.Errorf("sparseembedding: negative index %d", idx)
		}
		v.Indices[i] = uint32(idx)
	}
	return v, nil
}

func describe(e *HTTPValidationError) string {
	if e.Detail == nil || len(*e.Detail) == 0 {
		return "validation error"
	}
	first := (*e.Detail)[0]
	return first.Msg
}
