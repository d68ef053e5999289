package observability

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics(otel.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	// No-op providers are installed by default; recording must not panic.
	ctx := context.Background()
	m.RecordAPIRequest(ctx, "GET", "/alert/alerts", 200, 120*time.Millisecond)
	m.RecordRetry(ctx, "GET", "/alert/alerts")
	m.RecordTool(ctx, "list_alerts", "ok", 200*time.Millisecond)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("lm-mcp-server")
	if cfg.ServiceName != "lm-mcp-server" {
		t.Errorf("service = %q", cfg.ServiceName)
	}
	if cfg.Endpoint == "" {
		t.Error("default endpoint should be set")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("sample rate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "tool.execute")
	if span == nil {
		t.Fatal("expected span")
	}
	SetSpanError(ctx, nil)
	span.End()
}
