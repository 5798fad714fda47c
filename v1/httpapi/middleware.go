package httpapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Aleph-Alpha/discovery/v1/logger"
	"github.com/Aleph-Alpha/discovery/v1/metrics"
	"github.com/Aleph-Alpha/discovery/v1/tracer"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Observe opens a server span continuing any incoming trace, then records
// the request in metrics and the log once the handler returns.
func Observe(log logger.Logger, rec metrics.Recorder, tr *tracer.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		carrier := make(map[string]string, len(c.Request.Header))
		for k := range c.Request.Header {
			carrier[strings.ToLower(k)] = c.Request.Header.Get(k)
		}
		ctx := tr.SetCarrierOnContext(c.Request.Context(), carrier)
		ctx, span := tr.StartSpan(ctx, c.Request.Method+" "+route(c))
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		rec.ObserveHTTPRequest(route(c), c.Request.Method, status, elapsed)
		tr.SetAttributes(span, map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.route":       route(c),
			"http.status_code": status,
			"request_id":       c.GetString("request_id"),
		})
		if len(c.Errors) > 0 {
			tr.RecordErrorOnSpan(span, c.Errors.Last())
		}

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  c.GetString("request_id"),
		}
		if status >= 500 {
			log.ErrorWithContext(ctx, "request failed", nil, fields)
		} else {
			log.DebugWithContext(ctx, "request served", nil, fields)
		}
	}
}

// route is the matched route template, so paths with URNs share a label.
func route(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
