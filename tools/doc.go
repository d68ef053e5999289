// Package tools implements the LogicMonitor tool surface: a registry
// that dispatches named tools to their handlers, a write-operation
// guard, and the alert, device, and ingestion tools built on the
// lmapi client.
//
// Tools accept loosely-typed argument maps (as delivered by a JSON
// dispatch endpoint) and return JSON-shaped results. Write tools are
// registered with Write: true and are rejected by the registry unless
// write operations are enabled.
package tools
