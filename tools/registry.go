package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/observability"
)

// Handler executes a tool with the given arguments.
type Handler func(ctx context.Context, args Args) (any, error)

// Definition describes a registered tool.
type Definition struct {
	// Name is the unique tool name used for dispatch.
	Name string `json:"name"`
	// Description is a human-readable summary of what the tool does.
	Description string `json:"description"`
	// Write marks tools that modify state; they are rejected unless
	// write operations are enabled.
	Write bool `json:"write"`
	// Handler executes the tool.
	Handler Handler `json:"-"`
}

// MetricsRecorder receives tool execution metrics.
type MetricsRecorder interface {
	RecordTool(ctx context.Context, tool, status string, elapsed time.Duration)
}

// RequireWrite returns a WRITE_DISABLED error when a write operation is
// invoked while write operations are disabled, nil otherwise.
func RequireWrite(enabled bool, op string) error {
	if enabled {
		return nil
	}
	return errors.WriteDisabled().WithCause(fmt.Errorf("operation %q requires write access", op))
}

// Registry holds tool definitions and dispatches executions.
type Registry struct {
	mu           sync.RWMutex
	defs         map[string]Definition
	order        []string
	writeEnabled bool
	log          *logger.Logger
	metrics      MetricsRecorder
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithWriteEnabled enables write tools.
func WithWriteEnabled(enabled bool) RegistryOption {
	return func(r *Registry) { r.writeEnabled = enabled }
}

// WithLogger sets the logger for tool execution logging.
func WithLogger(log *logger.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// WithMetrics sets the metrics recorder for tool executions.
func WithMetrics(m MetricsRecorder) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty tool registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetGlobalLogger().WithComponent("tools")
	}
	return r
}

// Register adds a tool definition. Registering the same name twice is
// a programming error and is rejected.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tools: definition has no name")
	}
	if def.Handler == nil {
		return fmt.Errorf("tools: tool %q has no handler", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tools: tool %q already registered", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// List returns all definitions in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// WriteEnabled reports whether write tools are allowed.
func (r *Registry) WriteEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writeEnabled
}

// Execute dispatches a tool by name. Write tools are guarded before
// the handler runs, so disabled writes never reach the API.
func (r *Registry) Execute(ctx context.Context, name string, args Args) (any, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("unknown tool %q", name)).
			WithSuggestion("Use the tool listing to discover available tools.")
	}
	if def.Write {
		if err := RequireWrite(r.WriteEnabled(), name); err != nil {
			return nil, err
		}
	}

	ctx, span := observability.StartSpan(ctx, "tool."+name)
	defer span.End()

	start := time.Now()
	result, err := def.Handler(ctx, args)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
		r.log.WithError(err).Error("tool failed", map[string]interface{}{
			logger.FieldTool:     name,
			logger.FieldDuration: elapsed.Milliseconds(),
		})
	} else {
		r.log.Debug("tool executed", map[string]interface{}{
			logger.FieldTool:     name,
			logger.FieldDuration: elapsed.Milliseconds(),
		})
	}
	if r.metrics != nil {
		r.metrics.RecordTool(ctx, name, status, elapsed)
	}

	return result, err
}
