package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"
)

// EnsureCollections ──────────────────────────────────────────────────────────────
// EnsureCollections
// ──────────────────────────────────────────────────────────────
//
// EnsureCollections creates the dense and sparse collections if they are
// missing. Both checks run concurrently; it is safe to call repeatedly.
func (c *QdrantClient) EnsureCollections(ctx context.Context) error {
	if c.cfg.DenseDimension <= 0 {
		return fmt.Errorf("[Qdrant] dense dimension must be greater than 0")
	}

	existing, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.ensureCollection(gctx, existing, &qdrant.CreateCollection{
			CollectionName: c.cfg.DenseCollection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(c.cfg.DenseDimension),
				Distance: qdrant.Distance_Cosine,
			}),
		})
	})
	g.Go(func() error {
		return c.ensureCollection(gctx, existing, &qdrant.CreateCollection{
			CollectionName: c.cfg.SparseCollection,
			SparseVectorsConfig: qdrant.NewSparseVectorsConfig(map[string]*qdrant.SparseVectorParams{
				SparseVectorName: {},
			}),
		})
	})
	return g.Wait()
}

func (c *QdrantClient) ensureCollection(ctx context.Context, existing []string, req *qdrant.CreateCollection) error {
	name := req.CollectionName
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if slices.Contains(existing, name) {
		log.Printf("[Qdrant] Collection '%s' already exists", name)
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)
	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}
	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return nil
}

// UpsertDense writes dense points keyed by URN.
func (c *QdrantClient) UpsertDense(ctx context.Context, points []DensePoint) error {
	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		if len(p.Vector) == 0 {
			return fmt.Errorf("[Qdrant] empty dense vector for %s", p.URN)
		}
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(p.URN)),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(withURN(p.URN, p.Payload)),
		})
	}
	return c.upsertChunked(ctx, c.cfg.DenseCollection, structs)
}

// UpsertSparse writes sparse points keyed by URN.
func (c *QdrantClient) UpsertSparse(ctx context.Context, points []SparsePoint) error {
	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		if len(p.Indices) != len(p.Values) {
			return fmt.Errorf("[Qdrant] sparse vector for %s has %d indices and %d values", p.URN, len(p.Indices), len(p.Values))
		}
		structs = append(structs, &qdrant.PointStruct{
			Id: qdrant.NewID(PointID(p.URN)),
			Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{
				SparseVectorName: qdrant.NewVectorSparse(p.Indices, p.Values),
			}),
			Payload: qdrant.NewValueMap(withURN(p.URN, p.Payload)),
		})
	}
	return c.upsertChunked(ctx, c.cfg.SparseCollection, structs)
}

// ──────────────────────────────────────────────────────────────
// upsertChunked
// ──────────────────────────────────────────────────────────────
//
// upsertChunked splits points into defaultBatchSize chunks and sends each
// as a blocking upsert (Wait=true).
func (c *QdrantClient) upsertChunked(ctx context.Context, collection string, points []*qdrant.PointStruct) error {
	if len(points) == 0 {
		return nil
	}

	wait := true
	for start := 0; start < len(points); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(points))

		reqCtx, cancel := c.requestContext(ctx)
		_, err := c.api.Upsert(reqCtx, &qdrant.UpsertPoints{
			CollectionName: collection,
			Points:         points[start:end],
			Wait:           &wait,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d] (collection=%s): %w", start, end, collection, err)
		}
		log.Printf("[Qdrant] Inserted batch [%d:%d] (collection=%s)", start, end, collection)
	}
	return nil
}

// SearchDense returns the nearest products to vector.
func (c *QdrantClient) SearchDense(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector cannot be empty")
	}
	return c.query(ctx, &qdrant.QueryPoints{
		CollectionName: c.cfg.DenseCollection,
		Query:          qdrant.NewQuery(vector...),
	}, topK)
}

// SearchSparse returns the best BM25 matches.
func (c *QdrantClient) SearchSparse(ctx context.Context, indices []uint32, values []float32, topK int) ([]SearchResult, error) {
	if len(indices) == 0 || len(indices) != len(values) {
		return nil, fmt.Errorf("sparse query needs matching, non-empty indices and values")
	}
	return c.query(ctx, &qdrant.QueryPoints{
		CollectionName: c.cfg.SparseCollection,
		Query:          qdrant.NewQuerySparse(indices, values),
		Using:          qdrant.PtrOf(SparseVectorName),
	}, topK)
}

func (c *QdrantClient) query(ctx context.Context, req *qdrant.QueryPoints, topK int) ([]SearchResult, error) {
	if err := validateSearchInput(req.CollectionName, topK); err != nil {
		return nil, err
	}
	limit := uint64(topK)
	req.Limit = &limit
	req.WithPayload = qdrant.NewWithPayload(true)

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	resp, err := c.api.Query(reqCtx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] search failed (collection=%s): %w", req.CollectionName, err)
	}
	return parseSearchResults(resp)
}

// Delete ──────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────
//
// Delete removes the points of the given product URNs from both
// collections.
func (c *QdrantClient) Delete(ctx context.Context, urns []string) error {
	if len(urns) == 0 {
		return nil
	}

	ids := make([]*qdrant.PointId, 0, len(urns))
	for _, urn := range urns {
		ids = append(ids, qdrant.NewID(PointID(urn)))
	}

	wait := true
	for _, collection := range []string{c.cfg.DenseCollection, c.cfg.SparseCollection} {
		resp, err := c.api.Delete(ctx, &qdrant.DeletePoints{
			CollectionName: collection,
			Points: &qdrant.PointsSelector{
				PointsSelectorOneOf: &qdrant.PointsSelector_Points{
					Points: &qdrant.PointsIdsList{Ids: ids},
				},
			},
			Wait: &wait,
		})
		if err != nil {
			return fmt.Errorf("[Qdrant] delete failed (collection=%s): %w", collection, err)
		}
		log.Printf("[Qdrant] Delete completed (status=%s, collection=%s)", resp.Status.String(), collection)
	}
	return nil
}

// GetCollection ──────────────────────────────────────────────────────────────
// GetCollection
// ──────────────────────────────────────────────────────────────
//
// GetCollection returns point counts and vector settings for a collection.
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}

	size, distance := denseParams(info)
	return &Collection{
		Name:       name,
		Status:     info.Status.String(),
		Vectors:    derefUint64(info.IndexedVectorsCount),
		Points:     derefUint64(info.PointsCount),
		VectorSize: size,
		Distance:   distance,
	}, nil
}
