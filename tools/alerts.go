package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/validation"
)

// severityMap translates alert severity names to the numeric codes the
// LogicMonitor filter syntax expects.
var severityMap = map[string]int{
	"critical": 4,
	"error":    3,
	"warning":  2,
	"info":     1,
}

// normalizeAlertID strips the display-only LMA prefix from an alert
// ID. The API only accepts the numeric part.
func normalizeAlertID(alertID string) string {
	if len(alertID) >= 3 && strings.EqualFold(alertID[:3], "LMA") {
		return alertID[3:]
	}
	return alertID
}

// ListAlertsParams are the arguments for the get_alerts tool. Filter
// overrides all named parameters when set.
type ListAlertsParams struct {
	Severity   string
	Status     string
	Cleared    *bool
	Acked      *bool
	SDTed      *bool
	StartEpoch int64
	EndEpoch   int64
	Datapoint  string
	Instance   string
	Datasource string
	Device     string
	Filter     string
	Limit      int
	Offset     int
}

// ListAlerts lists alerts with filters built from the named
// parameters, or a raw filter expression for advanced queries.
func (s *Set) ListAlerts(ctx context.Context, p ListAlertsParams) (map[string]any, error) {
	query := map[string]string{
		"size":   strconv.Itoa(pageSize(p.Limit)),
		"offset": strconv.Itoa(p.Offset),
	}

	var note string
	if p.Filter != "" {
		query["filter"] = p.Filter
	} else {
		f := validation.NewFilter()
		if sev, ok := severityMap[strings.ToLower(p.Severity)]; ok {
			f.Eq("severity", sev)
		}
		switch strings.ToLower(p.Status) {
		case "active":
			f.Eq("cleared", false).Eq("acked", false)
		case "acknowledged":
			f.Eq("acked", true)
		}
		if p.Cleared != nil {
			f.Eq("cleared", *p.Cleared)
		}
		if p.Acked != nil {
			f.Eq("acked", *p.Acked)
		}
		if p.SDTed != nil {
			f.Eq("sdted", *p.SDTed)
		}
		if p.StartEpoch > 0 {
			f.GreaterOrEqual("startEpoch", p.StartEpoch)
		}
		if p.EndEpoch > 0 {
			f.LessOrEqual("endEpoch", p.EndEpoch)
		}
		if p.Datapoint != "" {
			f.Contains("dataPointName", p.Datapoint)
		}
		if p.Instance != "" {
			f.Contains("instanceName", p.Instance)
		}
		if p.Datasource != "" {
			f.Contains("resourceTemplateName", p.Datasource)
		}
		if p.Device != "" {
			f.Contains("monitorObjectName", p.Device)
		}
		if !f.Empty() {
			query["filter"] = f.String()
		}
		if f.Modified() {
			note = validation.WildcardNote
		}
	}

	resp, err := lmapi.Get[listEnvelope](s.client, ctx, "/alert/alerts", lmapi.WithQuery(query))
	if err != nil {
		return nil, err
	}

	alerts := make([]map[string]any, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		alerts = append(alerts, map[string]any{
			"id":         item["id"],
			"severity":   item["severity"],
			"device":     item["monitorObjectName"],
			"message":    item["alertValue"],
			"start_time": item["startEpoch"],
		})
	}

	result := map[string]any{
		"total":    resp.Data.Total,
		"count":    len(alerts),
		"offset":   p.Offset,
		"has_more": p.Offset+len(alerts) < resp.Data.Total,
		"alerts":   alerts,
	}
	if note != "" {
		result["note"] = note
	}
	return result, nil
}

// GetAlertDetails fetches the full alert record. Accepts IDs with or
// without the LMA prefix.
func (s *Set) GetAlertDetails(ctx context.Context, alertID string) (map[string]any, error) {
	if err := validation.Required("alert_id", alertID); err != nil {
		return nil, err
	}
	resp, err := lmapi.Get[map[string]any](s.client, ctx, "/alert/alerts/"+normalizeAlertID(alertID))
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AcknowledgeAlert acknowledges an alert with an optional comment.
func (s *Set) AcknowledgeAlert(ctx context.Context, alertID, note string) (map[string]any, error) {
	if err := validation.Required("alert_id", alertID); err != nil {
		return nil, err
	}

	var body any
	if note != "" {
		body = map[string]string{"ackComment": note}
	}
	resp, err := lmapi.Post[map[string]any](s.client, ctx,
		"/alert/alerts/"+normalizeAlertID(alertID)+"/ack", body)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Alert %s acknowledged", alertID),
		"result":  resp.Data,
	}, nil
}

// AddAlertNote adds a note to an alert without acknowledging it. An
// empty note is rejected before the API is called.
func (s *Set) AddAlertNote(ctx context.Context, alertID, note string) (map[string]any, error) {
	if err := validation.Required("alert_id", alertID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(note) == "" {
		return nil, errors.InvalidInput("Note cannot be empty").
			WithSuggestion("Provide a non-empty note text.")
	}

	resp, err := lmapi.Post[map[string]any](s.client, ctx,
		"/alert/alerts/"+normalizeAlertID(alertID)+"/note",
		map[string]string{"note": note})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Note added to alert %s", alertID),
		"result":  resp.Data,
	}, nil
}

// BulkAcknowledgeAlerts acknowledges up to bulkLimit alerts, reporting
// per-alert failures instead of aborting the batch.
func (s *Set) BulkAcknowledgeAlerts(ctx context.Context, alertIDs []string, note string) (map[string]any, error) {
	if len(alertIDs) == 0 {
		return nil, errors.InvalidInput("No alert IDs provided").
			WithSuggestion("Provide at least one alert ID.")
	}
	if len(alertIDs) > bulkLimit {
		return nil, errors.InvalidInput(
			fmt.Sprintf("Too many items (%d). Max %d.", len(alertIDs), bulkLimit)).
			WithSuggestion("Split into smaller batches.")
	}

	var (
		successIDs = make([]string, 0, len(alertIDs))
		failures   []map[string]any
	)
	for _, alertID := range alertIDs {
		var body any
		if note != "" {
			body = map[string]string{"ackComment": note}
		}
		_, err := lmapi.Post[map[string]any](s.client, ctx,
			"/alert/alerts/"+normalizeAlertID(alertID)+"/ack", body)
		if err != nil {
			failures = append(failures, map[string]any{"id": alertID, "error": err.Error()})
			continue
		}
		successIDs = append(successIDs, alertID)
	}

	return map[string]any{
		"total":        len(alertIDs),
		"acknowledged": len(successIDs),
		"failed":       len(failures),
		"success_ids":  successIDs,
		"failures":     failures,
	}, nil
}

// alertDefinitions returns the registry definitions for alert tools.
func (s *Set) alertDefinitions() []Definition {
	return []Definition{
		{
			Name:        "get_alerts",
			Description: "List alerts with optional severity, status, time, and name filters.",
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.ListAlerts(ctx, ListAlertsParams{
					Severity:   args.String("severity"),
					Status:     args.String("status"),
					Cleared:    args.BoolPtr("cleared"),
					Acked:      args.BoolPtr("acked"),
					SDTed:      args.BoolPtr("sdted"),
					StartEpoch: args.Int64("start_epoch"),
					EndEpoch:   args.Int64("end_epoch"),
					Datapoint:  args.String("datapoint"),
					Instance:   args.String("instance"),
					Datasource: args.String("datasource"),
					Device:     args.String("device"),
					Filter:     args.String("filter"),
					Limit:      args.Int("limit", defaultPageSize),
					Offset:     args.Int("offset", 0),
				})
			},
		},
		{
			Name:        "get_alert_details",
			Description: "Get detailed information about a specific alert.",
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.GetAlertDetails(ctx, args.String("alert_id"))
			},
		},
		{
			Name:        "acknowledge_alert",
			Description: "Acknowledge an alert, optionally with a comment.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.AcknowledgeAlert(ctx, args.String("alert_id"), args.String("note"))
			},
		},
		{
			Name:        "add_alert_note",
			Description: "Add a note to an alert without acknowledging it.",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.AddAlertNote(ctx, args.String("alert_id"), args.String("note"))
			},
		},
		{
			Name:        "bulk_acknowledge_alerts",
			Description: "Acknowledge multiple alerts at once (max 100 per call).",
			Write:       true,
			Handler: func(ctx context.Context, args Args) (any, error) {
				return s.BulkAcknowledgeAlerts(ctx, args.StringSlice("alert_ids"), args.String("note"))
			},
		},
	}
}
