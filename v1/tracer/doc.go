// Package tracer configures OpenTelemetry tracing for the discovery service.
//
// NewClient installs a global TracerProvider (exporting over OTLP/HTTP when
// EnableExport is set) and the W3C trace-context propagator. Spans wrap the
// upsert request, each vector-sync page and each search. GetCarrier and
// SetCarrierOnContext move the trace context through AMQP headers so a
// vector-sync job continues the trace of the upsert that enqueued it.
package tracer
