// Package observability wires OpenTelemetry tracing and metrics for
// the server. Traces and metrics are exported over OTLP HTTP when an
// endpoint is configured; without one the no-op global providers stay
// in place.
package observability
