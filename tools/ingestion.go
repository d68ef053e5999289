package tools

import (
	"context"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
)

// IngestLogs sends log entries to the log ingestion API. Each entry
// needs a message and a _lm.resourceId mapping to associate it with a
// monitored resource.
func (s *Set) IngestLogs(ctx context.Context, logs []map[string]any) (map[string]any, error) {
	if len(logs) == 0 {
		return nil, errors.InvalidInput("logs list cannot be empty")
	}

	resp, err := lmapi.IngestPost[map[string]any](s.client, ctx, "/log/ingest", logs)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":  true,
		"accepted": len(logs),
		"result":   resp.Data,
	}, nil
}

// PushMetrics sends a metric payload to the v2 metric ingestion API.
// The create=true flag lets the API create the resource, datasource,
// and instances on first push.
func (s *Set) PushMetrics(ctx context.Context, metrics map[string]any) (map[string]any, error) {
	if len(metrics) == 0 {
		return nil, errors.InvalidInput("metrics cannot be empty")
	}
	if _, ok := metrics["resourceIds"]; !ok {
		return nil, errors.InvalidInput("metrics.resourceIds is required")
	}
	if _, ok := metrics["dataSource"]; !ok {
		return nil, errors.InvalidInput("metrics.dataSource is required")
	}

	resp, err := lmapi.IngestPost[map[string]any](s.client, ctx,
		"/metric/ingest", metrics, lmapi.WithQueryParam("create", "true"))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"result":  resp.Data,
	}, nil
}

// ingestionDefinitions returns the registry definitions for ingestion
// tools. Ingestion writes data into the portal, so both are gated.
func (s *Set) ingestionDefinitions() []Definition {
	return []Definition{
		{
			Name:        "ingest_logs",
			Description: "Ingest log entries into LogicMonitor.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.IngestLogs(ctx, args.MapSlice("logs"))
			},
		},
		{
			Name:        "push_metrics",
			Description: "Push custom metrics into LogicMonitor.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.PushMetrics(ctx, args.Map("metrics"))
			},
		},
	}
}
