package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry, the /metrics server and the service series.
type Metrics struct {
	Server *http.Server

	// Registry is unwrapped; use it for gathering. Registration goes through
	// registerer so the service label is applied.
	Registry   *prometheus.Registry
	registerer prometheus.Registerer

	upsertItems   *prometheus.CounterVec
	vectorRecords *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	messages      *prometheus.CounterVec
}

// NewMetrics creates the registry, registers the service series and builds
// (but does not start) the HTTP server.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	m := &Metrics{
		Registry:   registry,
		registerer: wrapped,
	}

	m.upsertItems = createCounterVec("catalog_upsert_items_total", "Catalog upsert ledger entries by outcome", []string{"outcome"})
	m.vectorRecords = createCounterVec("vector_records_total", "Records submitted to vector indexes", []string{"index", "outcome"})
	m.httpDuration = createHistogramVec("http_request_duration_seconds", "Duration of HTTP requests in seconds", []string{"route", "method", "status"}, prometheus.DefBuckets)

	m.messages = createCounterVec("broker_messages_total", "Messages published or consumed by broker and outcome", []string{"system", "operation", "outcome"})

	wrapped.MustRegister(m.upsertItems, m.vectorRecords, m.httpDuration, m.messages)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
