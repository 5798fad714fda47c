package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func (m *Metrics) ObserveUpsertItem(outcome string) {
	m.upsertItems.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveVectorRecords(index, outcome string, n int) {
	if n <= 0 {
		return
	}
	m.vectorRecords.WithLabelValues(index, outcome).Add(float64(n))
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveMessage(system, operation, outcome string) {
	m.messages.WithLabelValues(system, operation, outcome).Inc()
}

// CreateCounter registers an additional counter with the service label.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
