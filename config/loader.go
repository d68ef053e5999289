package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "LM"

// envKeys are the recognized setting names; each binds to
// LM_<UPPERCASE_KEY>.
var envKeys = []string{
	"portal",
	"bearer_token",
	"access_id",
	"access_key",
	"api_version",
	"timeout",
	"max_retries",
	"enable_write_operations",
	"rate_limit",
	"rate_burst",
	"server_addr",
	"log_level",
	"log_format",
	"otel_endpoint",
}

// defaultMaxRetries applies only when LM_MAX_RETRIES is unset. An
// explicit 0 disables retries.
const defaultMaxRetries = 3

// LoaderOption configures Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	envFile    string
	configFile string
}

// WithEnvFile sets an explicit .env file path instead of the default
// ./.env lookup.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithConfigFile sets a YAML configuration file. Environment variables
// override values read from the file.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// Load reads configuration from the environment, an optional .env
// file, and an optional YAML file, applies defaults, normalizes, and
// validates.
func Load(opts ...LoaderOption) (*Config, error) {
	var lo loaderOptions
	for _, opt := range opts {
		opt(&lo)
	}

	envFile := lo.envFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		// Real environment variables still win over .env entries.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetDefault("max_retries", defaultMaxRetries)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if lo.configFile != "" {
		v.SetConfigFile(lo.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", lo.configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	mu     sync.Mutex
	cached *Config
)

// Get returns the cached configuration, loading it on first use.
func Get(opts ...LoaderOption) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	cfg, err := Load(opts...)
	if err != nil {
		return nil, err
	}
	cached = cfg
	return cached, nil
}

// Reset clears the cached configuration so the next Get reloads from
// the environment. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
}
