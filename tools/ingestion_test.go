package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

func TestIngestLogsRejectsEmpty(t *testing.T) {
	called := false
	s := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := s.IngestLogs(context.Background(), nil)
	if !errors.IsInvalidInput(err) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if called {
		t.Error("empty payload must not reach the API")
	}
}

func TestIngestLogs(t *testing.T) {
	var gotPath string
	var gotBody []map[string]any
	s := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"success":true}`))
	})

	logs := []map[string]any{
		{
			"message":        "Application started",
			"_lm.resourceId": map[string]any{"system.hostname": "web01"},
		},
	}
	result, err := s.IngestLogs(context.Background(), logs)
	if err != nil {
		t.Fatalf("IngestLogs: %v", err)
	}
	if gotPath != "/log/ingest" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotBody) != 1 || gotBody[0]["message"] != "Application started" {
		t.Errorf("body = %v", gotBody)
	}
	if result["accepted"] != 1 {
		t.Errorf("accepted = %v", result["accepted"])
	}
}

func TestPushMetricsValidation(t *testing.T) {
	s := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {})

	if _, err := s.PushMetrics(context.Background(), nil); !errors.IsInvalidInput(err) {
		t.Errorf("empty: %v, want INVALID_INPUT", err)
	}
	missing := map[string]any{"dataSource": "CustomAppMetrics"}
	if _, err := s.PushMetrics(context.Background(), missing); !errors.IsInvalidInput(err) {
		t.Errorf("missing resourceIds: %v, want INVALID_INPUT", err)
	}
	missing = map[string]any{"resourceIds": map[string]any{"system.hostname": "web01"}}
	if _, err := s.PushMetrics(context.Background(), missing); !errors.IsInvalidInput(err) {
		t.Errorf("missing dataSource: %v, want INVALID_INPUT", err)
	}
}

func TestPushMetrics(t *testing.T) {
	var gotPath, gotCreate string
	s := newTestSet(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCreate = r.URL.Query().Get("create")
		w.Write([]byte(`{"success":true}`))
	})

	metrics := map[string]any{
		"resourceIds": map[string]any{"system.hostname": "web01"},
		"dataSource":  "CustomAppMetrics",
		"instances": []map[string]any{
			{
				"instanceName": "main",
				"dataPoints": []map[string]any{
					{"dataPointName": "requests", "values": []int{100, 150}},
				},
			},
		},
	}
	result, err := s.PushMetrics(context.Background(), metrics)
	if err != nil {
		t.Fatalf("PushMetrics: %v", err)
	}
	if gotPath != "/metric/ingest" {
		t.Errorf("path = %q", gotPath)
	}
	if gotCreate != "true" {
		t.Errorf("create = %q", gotCreate)
	}
	if result["success"] != true {
		t.Errorf("result = %v", result)
	}
}
