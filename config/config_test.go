package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// clearLMEnv unsets all recognized LM_ variables and restores them
// when the test finishes.
func clearLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		envVar := "LM_" + strings.ToUpper(key)
		if v, ok := os.LookupEnv(envVar); ok {
			t.Setenv(envVar, v)
		}
		os.Unsetenv(envVar)
	}
	Reset()
	t.Cleanup(Reset)
}

func TestLoadFromEnv(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "acme.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal != "acme.logicmonitor.com" {
		t.Errorf("portal = %q", cfg.Portal)
	}
	if cfg.APIVersion != 3 || cfg.Timeout != 30 || cfg.MaxRetries != 3 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.EnableWriteOperations {
		t.Error("writes must default to disabled")
	}
}

func TestPortalNormalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"acme.logicmonitor.com", "acme.logicmonitor.com"},
		{"https://acme.logicmonitor.com", "acme.logicmonitor.com"},
		{"http://acme.logicmonitor.com", "acme.logicmonitor.com"},
		{"acme.logicmonitor.com/", "acme.logicmonitor.com"},
		{"https://acme.logicmonitor.com///", "acme.logicmonitor.com"},
	}
	for _, tt := range tests {
		cfg := Config{Portal: tt.input}
		cfg.Normalize()
		if cfg.Portal != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, cfg.Portal, tt.want)
		}
	}
}

func TestURLs(t *testing.T) {
	cfg := Config{Portal: "acme.logicmonitor.com"}
	if got := cfg.BaseURL(); got != "https://acme.logicmonitor.com/santaba/rest" {
		t.Errorf("BaseURL = %q", got)
	}
	if got := cfg.IngestURL(); got != "https://acme.logicmonitor.com/rest" {
		t.Errorf("IngestURL = %q", got)
	}
}

func TestValidateMissingPortal(t *testing.T) {
	cfg := Config{BearerToken: "tok"}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	if !errors.IsConfiguration(err) {
		t.Fatalf("err = %v, want configuration error", err)
	}
	if !strings.Contains(err.Error(), "LM_PORTAL") {
		t.Errorf("error should name LM_PORTAL: %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		mention string
	}{
		{"bearer only", Config{Portal: "p", BearerToken: "tok"}, false, ""},
		{"lmv1 pair", Config{Portal: "p", AccessID: "id", AccessKey: "key"}, false, ""},
		{"both schemes", Config{Portal: "p", BearerToken: "tok", AccessID: "id", AccessKey: "key"}, false, ""},
		{"none", Config{Portal: "p"}, true, "LM_BEARER_TOKEN"},
		{"id only", Config{Portal: "p", AccessID: "id"}, true, "together"},
		{"key only", Config{Portal: "p", AccessKey: "key"}, true, "together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.IsConfiguration(err) {
					t.Fatalf("err = %v, want configuration error", err)
				}
				if !strings.Contains(err.Error(), tt.mention) {
					t.Errorf("error %q should mention %q", err.Error(), tt.mention)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCredentialsPassthrough(t *testing.T) {
	cfg := Config{BearerToken: "tok", AccessID: "id", AccessKey: "key"}
	creds := cfg.Credentials()
	if creds.BearerToken != "tok" || creds.AccessID != "id" || creds.AccessKey != "key" {
		t.Errorf("credentials = %+v", creds)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearLMEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "LM_PORTAL=files.logicmonitor.com\nLM_BEARER_TOKEN=file-token\nLM_TIMEOUT=60\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal != "files.logicmonitor.com" {
		t.Errorf("portal = %q, want value from .env", cfg.Portal)
	}
	if cfg.Timeout != 60 {
		t.Errorf("timeout = %d, want 60", cfg.Timeout)
	}
}

func TestEnvWinsOverEnvFile(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "env.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "env-token")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("LM_PORTAL=file.logicmonitor.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithEnvFile(envFile))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal != "env.logicmonitor.com" {
		t.Errorf("portal = %q, real env must win over .env", cfg.Portal)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	clearLMEnv(t)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	content := "portal: yaml.logicmonitor.com\nbearer_token: yaml-token\ntimeout: 45\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithConfigFile(cfgFile))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal != "yaml.logicmonitor.com" {
		t.Errorf("portal = %q, want value from config file", cfg.Portal)
	}
	if cfg.BearerToken != "yaml-token" {
		t.Errorf("bearer token = %q, want value from config file", cfg.BearerToken)
	}
	if cfg.Timeout != 45 {
		t.Errorf("timeout = %d, want 45", cfg.Timeout)
	}
}

func TestEnvWinsOverConfigFile(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "env.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "env-token")

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("portal: file.logicmonitor.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(WithConfigFile(cfgFile))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal != "env.logicmonitor.com" {
		t.Errorf("portal = %q, environment must win over the config file", cfg.Portal)
	}
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "acme.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "tok")

	if _, err := Load(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Fatal("Load should fail when the named config file does not exist")
	}
}

func TestMaxRetriesZeroDisablesRetries(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "acme.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "tok")
	t.Setenv("LM_MAX_RETRIES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("max retries = %d, an explicit 0 must stay 0", cfg.MaxRetries)
	}
}

func TestGetCachesAndReset(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "one.logicmonitor.com")
	t.Setenv("LM_BEARER_TOKEN", "tok")

	first, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	t.Setenv("LM_PORTAL", "two.logicmonitor.com")
	second, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if second != first {
		t.Error("Get should return the cached instance")
	}

	Reset()
	third, err := Get()
	if err != nil {
		t.Fatalf("Get after Reset: %v", err)
	}
	if third.Portal != "two.logicmonitor.com" {
		t.Errorf("portal = %q, Reset should force a reload", third.Portal)
	}
}

func TestLoadInvalidFailsFast(t *testing.T) {
	clearLMEnv(t)
	t.Setenv("LM_PORTAL", "acme.logicmonitor.com")
	// no credentials

	if _, err := Load(); !errors.IsConfiguration(err) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}
