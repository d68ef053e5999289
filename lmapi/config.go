package lmapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/resilience"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultAPIVersion = "3"
)

// Config configures the LogicMonitor API client.
type Config struct {
	// BaseURL is the REST API base, https://<portal>.logicmonitor.com/santaba/rest.
	BaseURL string `mapstructure:"base_url"`

	// IngestURL is the ingestion API base, https://<portal>.logicmonitor.com/rest.
	// Optional; ingestion calls fail with a configuration error when unset.
	IngestURL string `mapstructure:"ingest_url"`

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxRetries is the number of retries after the first attempt.
	// Only connection failures and 5xx responses are retried.
	MaxRetries int `mapstructure:"max_retries"`

	// APIVersion is sent as the X-Version header. Defaults to "3".
	APIVersion string `mapstructure:"api_version"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `mapstructure:"headers"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `mapstructure:"tls"`

	// RateLimiter configures client-side rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `mapstructure:"-"`

	// Retry overrides the retry policy derived from MaxRetries. The
	// RetryIf and OnRetry hooks are always set by the client.
	Retry *resilience.RetryConfig `mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("lmapi: base URL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "https://") && !strings.HasPrefix(c.BaseURL, "http://") {
		return fmt.Errorf("lmapi: base URL must include a scheme (got: %s)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("lmapi: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// retryConfig builds the retry policy from MaxRetries.
func (c *Config) retryConfig() resilience.RetryConfig {
	if c.Retry != nil {
		cfg := *c.Retry
		if cfg.MaxAttempts <= 0 {
			cfg.MaxAttempts = c.MaxRetries + 1
		}
		return cfg
	}
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.MaxRetries + 1
	return cfg
}
