// Package auth generates authentication headers for LogicMonitor API
// requests. Two schemes are supported: static bearer tokens and LMv1
// request signing (HMAC-SHA256 over method, timestamp, body, and
// resource path). Providers are stateless after construction and safe
// for concurrent use.
package auth
