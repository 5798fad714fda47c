// Package metrics exposes Prometheus metrics for the discovery service.
//
// Each process owns an isolated registry wrapped with a constant
// service="<name>" label and served on a dedicated listener, separate from
// the public API. The catalog, vector-sync and HTTP layers report through
// the Recorder interface so tests can pass a no-op or a fresh registry.
package metrics
