package tools

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

type recordingMetrics struct {
	mu    sync.Mutex
	calls []struct {
		tool, status string
	}
}

func (m *recordingMetrics) RecordTool(ctx context.Context, tool, status string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, struct{ tool, status string }{tool, status})
}

func okTool(name string, write bool) Definition {
	return Definition{
		Name:        name,
		Description: name,
		Write:       write,
		Handler: func(ctx context.Context, args Args) (any, error) {
			return map[string]any{"ok": true}, nil
		},
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(okTool("get_alerts", false)); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(okTool("get_alerts", false)); err == nil {
		t.Error("duplicate register should fail")
	}
}

func TestRegisterRejectsInvalidDefinitions(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Definition{Name: "", Handler: okTool("x", false).Handler}); err == nil {
		t.Error("nameless definition should fail")
	}
	if err := r.Register(Definition{Name: "no_handler"}); err == nil {
		t.Error("handlerless definition should fail")
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), "nope", nil)
	if !errors.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestExecuteWriteGuard(t *testing.T) {
	called := false
	r := NewRegistry()
	def := okTool("acknowledge_alert", true)
	inner := def.Handler
	def.Handler = func(ctx context.Context, args Args) (any, error) {
		called = true
		return inner(ctx, args)
	}
	if err := r.Register(def); err != nil {
		t.Fatal(err)
	}

	_, err := r.Execute(context.Background(), "acknowledge_alert", nil)
	if !errors.IsWriteDisabled(err) {
		t.Fatalf("err = %v, want WRITE_DISABLED", err)
	}
	if called {
		t.Error("handler must not run when writes are disabled")
	}

	lmErr, ok := errors.AsLMError(err)
	if !ok {
		t.Fatal("expected LMError")
	}
	if lmErr.Suggestion == "" {
		t.Error("write-disabled error should carry a suggestion")
	}
}

func TestExecuteWriteEnabled(t *testing.T) {
	r := NewRegistry(WithWriteEnabled(true))
	if err := r.Register(okTool("acknowledge_alert", true)); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(context.Background(), "acknowledge_alert", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result == nil {
		t.Error("expected a result")
	}
}

func TestExecuteReadToolIgnoresWriteFlag(t *testing.T) {
	r := NewRegistry() // writes disabled
	if err := r.Register(okTool("get_alerts", false)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(context.Background(), "get_alerts", nil); err != nil {
		t.Errorf("read tool should run with writes disabled: %v", err)
	}
}

func TestExecuteRecordsMetrics(t *testing.T) {
	m := &recordingMetrics{}
	r := NewRegistry(WithWriteEnabled(true), WithMetrics(m))
	if err := r.Register(okTool("get_alerts", false)); err != nil {
		t.Fatal(err)
	}
	failing := Definition{
		Name:        "failing",
		Description: "always fails",
		Handler: func(ctx context.Context, args Args) (any, error) {
			return nil, errors.Server(500, "boom")
		},
	}
	if err := r.Register(failing); err != nil {
		t.Fatal(err)
	}

	r.Execute(context.Background(), "get_alerts", nil)
	r.Execute(context.Background(), "failing", nil)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(m.calls))
	}
	if m.calls[0].status != "ok" {
		t.Errorf("first status = %q, want ok", m.calls[0].status)
	}
	if m.calls[1].status != "error" {
		t.Errorf("second status = %q, want error", m.calls[1].status)
	}
}

func TestRequireWrite(t *testing.T) {
	if err := RequireWrite(true, "create_device"); err != nil {
		t.Errorf("enabled: %v", err)
	}
	err := RequireWrite(false, "create_device")
	if !errors.IsWriteDisabled(err) {
		t.Errorf("disabled: %v, want WRITE_DISABLED", err)
	}
}
