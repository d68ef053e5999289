// Package lmapi implements the HTTP client for the LogicMonitor REST
// and ingestion APIs. It layers authentication, rate limiting, retry
// with exponential backoff, and error classification on top of
// net/http.
//
// Requests against the REST API resolve under the portal's
// /santaba/rest base; ingestion requests (logs, push metrics) resolve
// under the portal's /rest base. Authentication headers are computed
// per attempt so that signed requests always carry a fresh timestamp.
package lmapi
