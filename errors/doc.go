// Package errors provides the structured error taxonomy for the
// LogicMonitor MCP server. Every failure surfaced by the API client,
// the tool layer, or configuration loading is an *LMError carrying a
// machine-readable code, the originating HTTP status (when any), a
// retryability flag, and an operator-facing suggestion.
package errors
