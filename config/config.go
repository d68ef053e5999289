package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/auth"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/logger"
)

// Config holds the full server configuration. Fields map to LM_
// environment variables, e.g. Portal to LM_PORTAL.
type Config struct {
	// Portal is the LogicMonitor portal hostname,
	// e.g. acme.logicmonitor.com. Scheme prefixes are stripped.
	Portal string `mapstructure:"portal"`

	// BearerToken authenticates with a static LMv1 bearer token.
	BearerToken string `mapstructure:"bearer_token"`

	// AccessID and AccessKey authenticate with LMv1 request signing.
	// Both must be set together. A bearer token takes precedence.
	AccessID  string `mapstructure:"access_id"`
	AccessKey string `mapstructure:"access_key"`

	// APIVersion is sent as the X-Version header.
	APIVersion int `mapstructure:"api_version"`

	// Timeout is the per-request timeout in seconds.
	Timeout int `mapstructure:"timeout"`

	// MaxRetries is the number of retries for transient failures.
	// Zero disables retrying.
	MaxRetries int `mapstructure:"max_retries"`

	// EnableWriteOperations gates tools that mutate portal state.
	EnableWriteOperations bool `mapstructure:"enable_write_operations"`

	// RateLimit and RateBurst configure client-side rate limiting.
	// Zero disables it.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	// ServerAddr is the HTTP listen address.
	ServerAddr string `mapstructure:"server_addr"`

	// LogLevel and LogFormat configure logging.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// OtelEndpoint enables OTLP export of traces and metrics when set.
	OtelEndpoint string `mapstructure:"otel_endpoint"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.APIVersion == 0 {
		c.APIVersion = 3
	}
	if c.Timeout == 0 {
		c.Timeout = 30
	}
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Normalize strips scheme prefixes and trailing slashes from the
// portal hostname.
func (c *Config) Normalize() {
	v := strings.TrimSpace(c.Portal)
	v = strings.TrimPrefix(v, "https://")
	v = strings.TrimPrefix(v, "http://")
	c.Portal = strings.TrimRight(v, "/")
}

// Validate checks the configuration, returning a configuration error
// describing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Portal == "" {
		problems = append(problems, "LM_PORTAL is required (e.g. acme.logicmonitor.com)")
	}
	if c.BearerToken == "" {
		switch {
		case c.AccessID == "" && c.AccessKey == "":
			problems = append(problems,
				"credentials are required: set LM_BEARER_TOKEN or both LM_ACCESS_ID and LM_ACCESS_KEY")
		case c.AccessID == "" || c.AccessKey == "":
			problems = append(problems,
				"LM_ACCESS_ID and LM_ACCESS_KEY must be set together")
		}
	}
	if c.Timeout <= 0 {
		problems = append(problems, "LM_TIMEOUT must be positive")
	}
	if c.MaxRetries < 0 {
		problems = append(problems, "LM_MAX_RETRIES must not be negative")
	}

	if len(problems) > 0 {
		return errors.Configuration(strings.Join(problems, "; "))
	}
	return nil
}

// BaseURL returns the REST API base URL.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://%s/santaba/rest", c.Portal)
}

// IngestURL returns the ingestion API base URL.
func (c *Config) IngestURL() string {
	return fmt.Sprintf("https://%s/rest", c.Portal)
}

// Credentials returns the credential material for auth.NewProvider.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		BearerToken: c.BearerToken,
		AccessID:    c.AccessID,
		AccessKey:   c.AccessKey,
	}
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LoggerConfig returns the logging configuration.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.LogLevel,
		Format: c.LogFormat,
	}
}
