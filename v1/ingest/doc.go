// Package ingest pulls catalogs from CMP registries on a schedule.
//
// A Source names a registry URL and, optionally, the organization URNs to
// keep from it. One run of a source is three steps, each retried up to
// Config.MaxAttempts times, and a step only starts when the previous one
// succeeded:
//
//  1. registry: fetch the registry document, keep the matching
//     organizations that exist in the catalog and ensure their brands;
//  2. feed: fetch each organization's ProductFeedIndex and every shard it
//     lists, then apply each shard through catalog.Service.UpsertItemList;
//  3. vector: request one vector sync per organization.
//
// Shards are split into item lists that hold at most one ProductGroup, and
// variants nested under hasVariant are lifted into Products that point back
// at their group. A shard that cannot be fetched or parsed is logged and
// skipped.
//
// The Scheduler runs every source at startup when Config.OnStartup is set
// and then every Config.Interval.
package ingest
