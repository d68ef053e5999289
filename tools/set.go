package tools

import (
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
)

// Page size limits for list tools. The API caps page sizes at 1000;
// larger requests are clamped rather than rejected.
const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// bulkLimit caps bulk operations to prevent accidental mass changes.
const bulkLimit = 100

// listEnvelope is the paginated list shape the LogicMonitor REST API
// returns for collection endpoints.
type listEnvelope struct {
	Total int              `json:"total"`
	Items []map[string]any `json:"items"`
}

// Set bundles the LogicMonitor tools around a shared API client.
type Set struct {
	client *lmapi.Client
}

// NewSet creates the tool set backed by client.
func NewSet(client *lmapi.Client) *Set {
	return &Set{client: client}
}

// Register registers every tool in the set on the registry.
func (s *Set) Register(r *Registry) error {
	var defs []Definition
	defs = append(defs, s.alertDefinitions()...)
	defs = append(defs, s.deviceDefinitions()...)
	defs = append(defs, s.ingestionDefinitions()...)
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// pageSize clamps a requested limit to the API's maximum page size.
func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
