//go:generate mockgen -source=sinks.go -destination=mock_sinks.go -package=vectorsync

package vectorsync

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/discovery/v1/qdrant"
	"github.com/Aleph-Alpha/discovery/v1/sparseembedding"
)

// Record is one product prepared for indexing.
type Record struct {
	URN      string
	Text     string
	Metadata map[string]any
}

// NewRecord builds the record for p.
func NewRecord(p ProductForVector) Record {
	return Record{URN: p.URN, Text: CanonicalText(p), Metadata: Metadata(p)}
}

// Sink indexes a page of records. A returned error fails the whole page
// for this sink.
type Sink interface {
	Name() string
	Upsert(ctx context.Context, records []Record) error
}

// DenseEmbedder is implemented by *embedding.Client.
type DenseEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// SparseEmbedder is implemented by *sparseembedding.Embedder.
type SparseEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([]sparseembedding.Vector, error)
}

// DenseIndex and SparseIndex are implemented by *qdrant.QdrantClient.
type DenseIndex interface {
	UpsertDense(ctx context.Context, points []qdrant.DensePoint) error
}

type SparseIndex interface {
	UpsertSparse(ctx context.Context, points []qdrant.SparsePoint) error
}

// DenseSink embeds canonical text into dense vectors and writes them to
// the dense collection.
type DenseSink struct {
	embedder DenseEmbedder
	index    DenseIndex
}

func NewDenseSink(embedder DenseEmbedder, index DenseIndex) *DenseSink {
	return &DenseSink{embedder: embedder, index: index}
}

func (s *DenseSink) Name() string { return "dense" }

func (s *DenseSink) Upsert(ctx context.Context, records []Record) error {
	vectors, err := s.embedder.Embed(ctx, texts(records))
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("embed: got %d vectors for %d records", len(vectors), len(records))
	}

	points := make([]qdrant.DensePoint, len(records))
	for i, r := range records {
		points[i] = qdrant.DensePoint{URN: r.URN, Vector: vectors[i], Payload: r.Metadata}
	}
	return s.index.UpsertDense(ctx, points)
}

// SparseSink computes BM25 vectors and writes them to the sparse collection.
type SparseSink struct {
	embedder SparseEmbedder
	index    SparseIndex
}

func NewSparseSink(embedder SparseEmbedder, index SparseIndex) *SparseSink {
	return &SparseSink{embedder: embedder, index: index}
}

func (s *SparseSink) Name() string { return "sparse" }

func (s *SparseSink) Upsert(ctx context.Context, records []Record) error {
	vectors, err := s.embedder.EmbedBatch(ctx, texts(records))
	if err != nil {
		return fmt.Errorf("bm25: %w", err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("bm25: got %d vectors for %d records", len(vectors), len(records))
	}

	points := make([]qdrant.SparsePoint, len(records))
	for i, r := range records {
		points[i] = qdrant.SparsePoint{
			URN:     r.URN,
			Indices: vectors[i].Indices,
			Values:  vectors[i].Values,
			Payload: r.Metadata,
		}
	}
	return s.index.UpsertSparse(ctx, points)
}

func texts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}
