package auth

import (
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// Provider generates authentication headers for a single API request.
//
// Implementations must be safe for concurrent use: the HTTP client
// calls Headers from multiple goroutines, once per attempt, so that
// time-sensitive schemes sign with a fresh timestamp on every retry.
type Provider interface {
	// Headers returns the authentication headers for one request.
	// resourcePath is the API path without the query string; body is
	// the exact payload bytes that will be sent, empty for GET/DELETE.
	Headers(method, resourcePath, body string) map[string]string
}

// Credentials holds the raw credential material loaded from
// configuration. Exactly one scheme is selected by NewProvider.
type Credentials struct {
	BearerToken string
	AccessID    string
	AccessKey   string
}

// NewProvider selects and constructs an auth provider from credentials.
// A bearer token wins when both schemes are configured. Returns a
// configuration error when neither scheme is complete.
func NewProvider(creds Credentials) (Provider, error) {
	if creds.BearerToken != "" {
		return NewBearer(creds.BearerToken)
	}
	if creds.AccessID != "" || creds.AccessKey != "" {
		return NewLMv1(creds.AccessID, creds.AccessKey)
	}
	return nil, errors.Configuration(
		"no credentials configured: set LM_BEARER_TOKEN or both LM_ACCESS_ID and LM_ACCESS_KEY")
}
