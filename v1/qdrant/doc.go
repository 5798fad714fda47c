// Package qdrant stores product vectors in Qdrant.
//
// Two collections are managed: a dense collection with one embedding per
// product (cosine distance) and a sparse collection with one named "bm25"
// sparse vector per product. Point ids are derived from product URNs with
// PointID, so indexing the same product twice overwrites its point, and the
// URN is stored in the payload under "urn" for read-back.
//
// # Usage
//
//	qc, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	if err := qc.EnsureCollections(ctx); err != nil {
//	    return err
//	}
//	err = qc.UpsertDense(ctx, []qdrant.DensePoint{{URN: urn, Vector: vec, Payload: meta}})
//	hits, err := qc.SearchDense(ctx, queryVec, 20)
//
// # Fx
//
// FXModule provides *QdrantClient from a *Config, creates the collections on
// start and closes the connection on stop.
package qdrant
