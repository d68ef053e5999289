// Package health runs the server's health checks and aggregates them
// into an overall status for the health endpoints.
package health

import (
	"context"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/version"
)

// Check statuses.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Overall statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Check is the result of a single health check.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Response is the aggregated health check result.
type Response struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// ConfigCheck reports whether configuration loaded successfully.
type ConfigCheck func() error

// Checker runs health checks against the server's dependencies.
type Checker struct {
	client      *lmapi.Client
	configCheck ConfigCheck
}

// NewChecker creates a health checker. client may be nil when the
// client failed to initialize; configCheck may be nil to skip the
// config check.
func NewChecker(client *lmapi.Client, configCheck ConfigCheck) *Checker {
	return &Checker{client: client, configCheck: configCheck}
}

// Run executes all health checks. When connectivity is true, a
// lightweight API call verifies the portal is reachable; connectivity
// failures degrade the status instead of failing it, since the portal
// may be briefly unavailable while the server itself is fine.
func (c *Checker) Run(ctx context.Context, connectivity bool) Response {
	checks := map[string]Check{
		"server": {Status: StatusPass, Message: "server running"},
	}

	if c.client != nil {
		checks["client"] = Check{Status: StatusPass, Message: "client initialized"}
	} else {
		checks["client"] = Check{Status: StatusFail, Message: "client not initialized"}
	}

	if c.configCheck != nil {
		if err := c.configCheck(); err != nil {
			checks["config"] = Check{Status: StatusFail, Message: "configuration error: " + err.Error()}
		} else {
			checks["config"] = Check{Status: StatusPass, Message: "configuration valid"}
		}
	}

	if connectivity && c.client != nil {
		checks["connectivity"] = c.checkConnectivity(ctx)
	}

	return Response{
		Status:    overall(checks),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   version.GetShortVersion(),
		Checks:    checks,
	}
}

// checkConnectivity pings the portal with a minimal request.
func (c *Checker) checkConnectivity(ctx context.Context) Check {
	_, err := c.client.Do(ctx, lmapi.Request{
		Method: "GET",
		Path:   "/setting/admins",
		Query:  map[string]string{"size": "1"},
	})
	if err != nil {
		return Check{Status: StatusWarn, Message: "API check failed: " + err.Error()}
	}
	return Check{Status: StatusPass, Message: "LogicMonitor API reachable"}
}

// overall folds individual check statuses into the aggregate status.
func overall(checks map[string]Check) string {
	status := StatusHealthy
	for _, check := range checks {
		switch check.Status {
		case StatusFail:
			return StatusUnhealthy
		case StatusWarn:
			status = StatusDegraded
		}
	}
	return status
}
