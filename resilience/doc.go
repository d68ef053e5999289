// Package resilience provides retry with exponential backoff and a
// token bucket rate limiter, used by the LogicMonitor API client to
// survive transient failures and stay under portal rate limits.
package resilience
