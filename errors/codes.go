package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration and input errors (never retryable)
const (
	// ErrCodeConfig indicates invalid or missing configuration, detected at startup.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrCodeInvalidInput indicates invalid tool arguments or request payloads.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeWriteDisabled indicates a write operation was attempted while writes are disabled.
	ErrCodeWriteDisabled ErrorCode = "WRITE_DISABLED"
)

// Remote API errors
const (
	// ErrCodeAuth indicates the LogicMonitor API rejected the credentials (401).
	ErrCodeAuth ErrorCode = "AUTH_FAILED"
	// ErrCodePermission indicates the API token lacks required permissions (403).
	ErrCodePermission ErrorCode = "PERMISSION_DENIED"
	// ErrCodeNotFound indicates the requested resource does not exist (404).
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimited indicates the API rate limit was exceeded (429).
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeServer indicates a LogicMonitor server-side failure (5xx).
	ErrCodeServer ErrorCode = "SERVER_ERROR"
	// ErrCodeRemote is the generic code for any other non-2xx response.
	ErrCodeRemote ErrorCode = "LM_ERROR"
)

// Transport errors
const (
	// ErrCodeConnection indicates the request never produced a response
	// (connect failure, DNS failure, or timeout).
	ErrCodeConnection ErrorCode = "CONNECTION_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnection: true,
	ErrCodeServer:     true,
}

// IsRetryableCode returns true if the error code indicates a transient
// failure the client may retry transparently.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
