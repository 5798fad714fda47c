// Package vectorsync keeps the dense and sparse product indexes in step with
// the catalog.
//
// A Pipeline walks an organization's products page by page (Config.PageSize,
// 96 by default), turns each product into a Record and hands the page to two
// sinks. DenseSink embeds the canonical text with the embedding service and
// SparseSink with the BM25 service; both write to Qdrant with the product
// metadata as payload. The sinks fail independently:
//
//	res := pipeline.UpsertProducts(ctx, orgID)
//	// res.DenseIndexSuccess, res.SparseIndexSuccess, res.Errors
//
// A page is counted in SuccessfulRecords only when both sinks accepted it.
//
// Canonical text is, in order: name, description, "brand:<brand>",
// category, "key:value" for every non-empty variant attribute sorted by key,
// and "in stock" for IN_STOCK products.
//
// # Jobs
//
// JobPublisher implements catalog.JobPublisher by sending
// {"organization_id": "<uuid>"} to the RabbitMQ vector queue. Worker
// consumes that queue, runs one pipeline pass per message, acks once the
// pass finishes and nacks malformed messages without requeue.
//
// FXModule provides the Pipeline; JobsFXModule adds the publisher and the
// worker.
package vectorsync
