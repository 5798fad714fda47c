// Package sparseembedding computes BM25 sparse vectors for product text and
// search queries.
//
// The HTTP client in client.gen.go is generated by oapi-codegen from api.yml.
// Regenerate it after changing the API description:
//
//	cd v1/sparseembedding
//	go generate
//
// # Embedder
//
// Embedder wraps the generated client for the indexing and search paths. It
// is configured from SPARSE_EMBEDDING_* variables, tags each call with an
// X-Request-Id header and converts the response into uint32 indices ready for
// a Qdrant sparse vector:
//
//	emb, err := sparseembedding.NewEmbedder(cfg)
//	vec, err := emb.Embed(ctx, "red running shoes")
//	// vec.Indices, vec.Values
//
// EmbedBatch embeds a page of product texts in order and stops at the first
// failure.
//
// The language is optional; when unset the service detects it. The average
// word count is the expected token count after stemming and stopword
// removal and defaults to 256.
//
// FXModule provides *Embedder from a *Config.
package sparseembedding
