// Package server exposes the HTTP surface: health, liveness,
// readiness, version, and JSON tool dispatch, built on Gin with
// request-ID, recovery, and request-logging middleware.
package server
