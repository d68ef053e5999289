package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the metric instruments for LogicMonitor API and tool
// activity.
type Metrics struct {
	apiRequestTotal    metric.Int64Counter
	apiRequestDuration metric.Float64Histogram
	retryTotal         metric.Int64Counter
	toolTotal          metric.Int64Counter
	toolDuration       metric.Float64Histogram
}

var _ lmapi.MetricsRecorder = (*Metrics)(nil)

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	apiRequestTotal, err := meter.Int64Counter("lm.api.request.total",
		metric.WithDescription("Total LogicMonitor API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lm.api.request.total counter: %w", err)
	}

	apiRequestDuration, err := meter.Float64Histogram("lm.api.request.duration",
		metric.WithDescription("Duration of LogicMonitor API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lm.api.request.duration histogram: %w", err)
	}

	retryTotal, err := meter.Int64Counter("lm.api.retry.total",
		metric.WithDescription("Total retried LogicMonitor API requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lm.api.retry.total counter: %w", err)
	}

	toolTotal, err := meter.Int64Counter("lm.tool.total",
		metric.WithDescription("Total tool executions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lm.tool.total counter: %w", err)
	}

	toolDuration, err := meter.Float64Histogram("lm.tool.duration",
		metric.WithDescription("Duration of tool executions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lm.tool.duration histogram: %w", err)
	}

	return &Metrics{
		apiRequestTotal:    apiRequestTotal,
		apiRequestDuration: apiRequestDuration,
		retryTotal:         retryTotal,
		toolTotal:          toolTotal,
		toolDuration:       toolDuration,
	}, nil
}

// RecordAPIRequest records a completed API request attempt.
func (m *Metrics) RecordAPIRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.apiRequestTotal.Add(ctx, 1, attrs)
	m.apiRequestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	))
}

// RecordRetry records a retried API request.
func (m *Metrics) RecordRetry(ctx context.Context, method, path string) {
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	))
}

// RecordTool records a tool execution.
func (m *Metrics) RecordTool(ctx context.Context, tool, status string, elapsed time.Duration) {
	m.toolTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	))
	m.toolDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("tool", tool),
	))
}
