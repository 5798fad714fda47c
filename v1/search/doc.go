// Package search implements hybrid product search.
//
// A query is embedded twice, densely by the embedding service and as a
// BM25 sparse vector, and both Qdrant collections are queried concurrently
// for 2*TopK candidates. The two rankings are merged with weighted
// reciprocal rank fusion (k=60, alpha=0.5 by default), the best TopK URNs are
// loaded from the catalog and rendered as a schema.org ItemList.
//
//	svc := search.NewService(cfg, denseClient, bm25, qdrantClient, catalogSvc, redisClient, log, tr)
//	list, err := svc.Search(ctx, "red running shoes")
//	if search.IsInvalidQuery(err) {
//		// 400
//	}
//
// Formatted responses are cached in Redis under CacheKey(query) for
// Config.CacheTTL. Cache errors are logged and never fail a search.
package search
