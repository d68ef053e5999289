package lmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/auth"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/resilience"
)

// MetricsRecorder receives per-request measurements from the client.
type MetricsRecorder interface {
	RecordAPIRequest(ctx context.Context, method, path string, status int, elapsed time.Duration)
	RecordRetry(ctx context.Context, method, path string)
}

// Client is the LogicMonitor API client with built-in auth, rate
// limiting, retry, and error classification.
type Client struct {
	httpClient *http.Client
	config     Config
	auth       auth.Provider
	rl         *resilience.RateLimiter
	log        *logger.Logger
	metrics    MetricsRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request logging.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics sets the metrics recorder for request measurements.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a new API client with the given configuration and auth
// provider.
func New(cfg Config, provider auth.Provider, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Configuration(err.Error())
	}
	if provider == nil {
		return nil, errors.Configuration("lmapi: auth provider is required")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, errors.Configuration(err.Error())
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		auth:   provider,
		log:    logger.WithComponent("lmapi"),
	}

	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do executes an API request with retry. Only connection failures and
// 5xx responses are retried; every 4xx, including 429, surfaces
// immediately. Authentication headers are recomputed on each attempt.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	// Fix the wire bytes up front: signatures must cover the exact
	// payload that is sent.
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("encode request body: %v", err))
	}

	base, err := c.baseFor(req)
	if err != nil {
		return nil, err
	}

	retryCfg := c.config.retryConfig()
	retryCfg.RetryIf = errors.IsRetryable
	retryCfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.log.Warn("retrying request", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldPath, req.Path,
			logger.FieldAttempt, attempt,
			"backoff_ms", backoff.Milliseconds(),
			logger.FieldError, err.Error(),
		))
		if c.metrics != nil {
			c.metrics.RecordRetry(ctx, req.Method, req.Path)
		}
	}

	// The retry helper returns only the error when an attempt fails;
	// keep the last classified response so callers still see the HTTP
	// status and body for diagnostics.
	var last *Response
	result, err := resilience.Retry(ctx, retryCfg, func() (*Response, error) {
		resp, attemptErr := c.attempt(ctx, base, req, body)
		if resp != nil {
			last = resp
		}
		return resp, attemptErr
	})
	if result == nil {
		result = last
	}
	return result, err
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// baseFor resolves the base URL for a request.
func (c *Client) baseFor(req Request) (string, error) {
	if req.Ingest {
		if c.config.IngestURL == "" {
			return "", errors.Configuration("lmapi: ingest URL is not configured")
		}
		return c.config.IngestURL, nil
	}
	return c.config.BaseURL, nil
}

// attempt executes a single request attempt.
func (c *Client) attempt(ctx context.Context, base string, req Request, body string) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := c.buildRequest(ctx, base, req, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Caller cancellation is not a connection failure and must
		// not be retried.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Connection(err, fmt.Sprintf("request to %s failed", req.Path))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Connection(err, "read response body")
	}

	elapsed := time.Since(start)
	c.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldPath, req.Path,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	if c.metrics != nil {
		c.metrics.RecordAPIRequest(ctx, req.Method, req.Path, resp.StatusCode, elapsed)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       respBody,
	}

	if classErr := classify(resp, respBody); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs an *http.Request, computing fresh auth
// headers for this attempt.
func (c *Client) buildRequest(ctx context.Context, base string, req Request, body string) (*http.Request, error) {
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(req.Path, "/")

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, reader)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if !req.Ingest {
		httpReq.Header.Set("X-Version", c.config.APIVersion)
	}
	if body != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	// The signature covers the resource path only, never the query
	// string, and is bound to this attempt's timestamp.
	for k, v := range c.auth.Headers(req.Method, req.Path, body) {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// classify maps a non-2xx response to a typed error.
func classify(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := parseErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("%s (HTTP %d)", http.StatusText(resp.StatusCode), resp.StatusCode)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 0
		if v := resp.Header.Get("Retry-After"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				retryAfter = n
			}
		}
		return errors.RateLimited(message, retryAfter)
	}

	if err := errors.FromStatus(resp.StatusCode, message); err != nil {
		return err
	}
	return nil
}

// parseErrorMessage extracts the error message from a LogicMonitor
// error body. The REST API uses errorMessage, ingestion uses errmsg or
// message.
func parseErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		ErrorMessage string `json:"errorMessage"`
		Errmsg       string `json:"errmsg"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.ErrorMessage != "":
		return envelope.ErrorMessage
	case envelope.Errmsg != "":
		return envelope.Errmsg
	default:
		return envelope.Message
	}
}

// encodeBody converts a body value into the exact wire string.
func encodeBody(body any) (string, error) {
	switch v := body.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
