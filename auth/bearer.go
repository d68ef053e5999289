package auth

import (
	"strings"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// Bearer authenticates requests with a static bearer token.
type Bearer struct {
	token string
}

var _ Provider = (*Bearer)(nil)

// NewBearer creates a bearer token provider. The token must be
// non-empty after trimming whitespace.
func NewBearer(token string) (*Bearer, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.Configuration("bearer token must not be empty")
	}
	return &Bearer{token: token}, nil
}

// Headers returns the Authorization header. The request parameters are
// ignored: bearer tokens do not depend on the request being signed.
func (b *Bearer) Headers(method, resourcePath, body string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + b.token,
	}
}
