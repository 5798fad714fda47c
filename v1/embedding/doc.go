// Package embedding computes dense text embeddings through an
// OpenAI-compatible inference service.
//
// # Overview
//
// Client posts {"model": ..., "input": [...]} to <EMBEDDING_ENDPOINT>/embeddings
// with a bearer service token and returns float32 vectors in input order:
//
//	client, err := embedding.NewClient(cfg)
//	vectors, err := client.Embed(ctx, []string{"red running shoes", "blue kettle"})
//	query, err := client.EmbedQuery(ctx, "shoes")
//
// Large inputs are split into requests of at most Config.BatchSize texts.
// When Config.Dimension is set, vectors of any other length are rejected so
// a model change cannot silently corrupt an index.
//
// # Configuration
//
//   - EMBEDDING_ENDPOINT: base URL of the inference service (required)
//   - EMBEDDING_SERVICE_TOKEN: bearer token (required)
//   - EMBEDDING_MODEL: model name (required)
//   - EMBEDDING_DIMENSION: expected vector size
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS: request timeout (default 30)
//   - EMBEDDING_BATCH_SIZE: texts per request (default 96)
//
// # Fx
//
// FXModule provides *Client and closes idle connections on stop.
package embedding
