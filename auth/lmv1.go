package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// LMv1 signs requests with LogicMonitor's LMv1 HMAC scheme. Each call
// to Headers produces a fresh signature bound to the current
// millisecond timestamp, the HTTP method, the request body, and the
// resource path.
type LMv1 struct {
	accessID  string
	accessKey string

	// now is the clock used for timestamps, replaceable in tests.
	now func() time.Time
}

var _ Provider = (*LMv1)(nil)

// NewLMv1 creates an LMv1 signing provider. Both the access ID and
// access key must be non-empty after trimming whitespace.
func NewLMv1(accessID, accessKey string) (*LMv1, error) {
	accessID = strings.TrimSpace(accessID)
	accessKey = strings.TrimSpace(accessKey)
	if accessID == "" || accessKey == "" {
		return nil, errors.Configuration(
			"LMv1 auth requires both LM_ACCESS_ID and LM_ACCESS_KEY")
	}
	return &LMv1{
		accessID:  accessID,
		accessKey: accessKey,
		now:       time.Now,
	}, nil
}

// Headers computes the LMv1 Authorization header for one request.
// The signature covers the method, the epoch-millisecond timestamp,
// the body, and the resource path, concatenated in that order without
// separators. The query string is never part of the signature.
func (l *LMv1) Headers(method, resourcePath, body string) map[string]string {
	timestamp := l.now().UnixMilli()
	signature := l.sign(method, timestamp, body, resourcePath)
	return map[string]string{
		"Authorization": fmt.Sprintf("LMv1 %s:%s:%d", l.accessID, signature, timestamp),
	}
}

// sign computes the base64-encoded HMAC-SHA256 signature.
func (l *LMv1) sign(method string, timestamp int64, body, resourcePath string) string {
	message := fmt.Sprintf("%s%d%s%s", strings.ToUpper(method), timestamp, body, resourcePath)
	mac := hmac.New(sha256.New, []byte(l.accessKey))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
