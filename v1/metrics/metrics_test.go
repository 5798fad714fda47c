package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersCarryServiceLabel(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "discovery"})

	m.ObserveUpsertItem("success")
	m.ObserveUpsertItem("success")
	m.ObserveUpsertItem("error")
	m.ObserveVectorRecords("dense", "success", 96)
	m.ObserveVectorRecords("sparse", "error", 0)
	m.ObserveMessage("rabbit", "consume", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upsertItems.WithLabelValues("success")))
	assert.Equal(t, 96.0, testutil.ToFloat64(m.vectorRecords.WithLabelValues("dense", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.vectorRecords.WithLabelValues("sparse", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messages.WithLabelValues("rabbit", "consume", "success")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			found := false
			for _, l := range metric.GetLabel() {
				if l.GetName() == "service" && l.GetValue() == "discovery" {
					found = true
				}
			}
			assert.True(t, found, "series %s lacks service label", f.GetName())
		}
	}
}

func TestMetrics_HandlerServesHistogram(t *testing.T) {
	m := NewMetrics(Config{Address: ":0", ServiceName: "discovery"})
	m.ObserveHTTPRequest("/v1/products", http.MethodGet, 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_request_duration_seconds_count{method="GET",route="/v1/products",service="discovery",status="200"} 1`), body)
}
