// Package logger provides structured logging for the discovery service.
//
// It wraps Uber's zap with a small, map-based field API so call sites do not
// depend on zap types:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "discovery"})
//	log.Info("catalog upsert finished", nil, map[string]interface{}{
//		"organization_id": orgID,
//		"errors":          len(ledger.Errors),
//	})
//
// The ...WithContext variants attach trace_id and span_id from the active
// OpenTelemetry span when EnableTracing is set, which correlates log lines
// with the spans emitted by the tracer package.
//
// Components depend on the Logger interface; FXModule provides both the
// concrete *LoggerClient and the interface.
package logger
