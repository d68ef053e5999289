// Package config loads server configuration from LM_-prefixed
// environment variables and an optional .env file. A process-wide
// cached instance is available through Get; Reset clears it so tests
// can reload with different environments.
package config
