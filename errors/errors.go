package errors

import (
	"fmt"
	"net/http"
)

// LMError is the unified error type for LogicMonitor operations.
type LMError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status returned by the remote API, 0 for
	// failures that never produced a response.
	HTTPStatus int `json:"-"`
	// Retryable indicates whether the operation can be retried.
	Retryable bool `json:"retryable"`
	// Suggestion tells the operator what to check or do next.
	Suggestion string `json:"suggestion,omitempty"`
	// RetryAfter is the server-provided wait in seconds for rate-limited
	// requests, 0 if not provided.
	RetryAfter int `json:"retry_after,omitempty"`
	// Cause is the underlying error.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *LMError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *LMError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *LMError) WithCause(cause error) *LMError {
	e.Cause = cause
	return e
}

// WithSuggestion overrides the default suggestion and returns the receiver.
func (e *LMError) WithSuggestion(s string) *LMError {
	e.Suggestion = s
	return e
}

// --- Constructors ---

// Configuration creates an error for invalid or missing configuration.
// Construction-time credential problems use this code so startup fails
// fast instead of producing invalid headers at first request.
func Configuration(message string) *LMError {
	return &LMError{
		Code: ErrCodeConfig, Message: message,
		Suggestion: "Check your LM_ environment variables and .env file configuration.",
	}
}

// InvalidInput creates an error for bad tool arguments or payloads.
func InvalidInput(message string) *LMError {
	return &LMError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// WriteDisabled creates the error returned when a write operation is
// invoked while write operations are disabled.
func WriteDisabled() *LMError {
	return &LMError{
		Code: ErrCodeWriteDisabled, Message: "Write operations are disabled",
		HTTPStatus: http.StatusForbidden,
		Suggestion: "Set LM_ENABLE_WRITE_OPERATIONS=true to enable write operations.",
	}
}

// Authentication creates an error for a 401 from the API.
func Authentication(message string) *LMError {
	return &LMError{
		Code: ErrCodeAuth, Message: message,
		HTTPStatus: http.StatusUnauthorized,
		Suggestion: "Check your LM_BEARER_TOKEN or LM_ACCESS_ID/LM_ACCESS_KEY credentials.",
	}
}

// Permission creates an error for a 403 from the API.
func Permission(message string) *LMError {
	return &LMError{
		Code: ErrCodePermission, Message: message,
		HTTPStatus: http.StatusForbidden,
		Suggestion: "Your API token may lack required permissions. Contact your LogicMonitor admin.",
	}
}

// NotFound creates an error for a 404 from the API.
func NotFound(message string) *LMError {
	return &LMError{
		Code: ErrCodeNotFound, Message: message,
		HTTPStatus: http.StatusNotFound,
		Suggestion: "The requested resource does not exist. Verify the ID is correct.",
	}
}

// RateLimited creates an error for a 429 from the API.
func RateLimited(message string, retryAfter int) *LMError {
	suggestion := "API rate limit reached."
	if retryAfter > 0 {
		suggestion = fmt.Sprintf("API rate limit reached. Wait %d seconds and retry.", retryAfter)
	}
	return &LMError{
		Code: ErrCodeRateLimited, Message: message,
		HTTPStatus: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
		Suggestion: suggestion,
	}
}

// Server creates an error for a 5xx from the API.
func Server(status int, message string) *LMError {
	return &LMError{
		Code: ErrCodeServer, Message: message,
		HTTPStatus: status, Retryable: true,
		Suggestion: "LogicMonitor returned a server error. Try again later or check LM status.",
	}
}

// Connection creates an error for a transport-level failure.
func Connection(cause error, message string) *LMError {
	return &LMError{
		Code: ErrCodeConnection, Message: message,
		Retryable: true, Cause: cause,
		Suggestion: "Cannot reach LogicMonitor. Check LM_PORTAL and network access.",
	}
}

// Remote creates a generic error for any other non-2xx response.
func Remote(status int, message string) *LMError {
	return &LMError{
		Code: ErrCodeRemote, Message: message,
		HTTPStatus: status,
	}
}

// FromStatus maps an HTTP status code to a typed error. Returns nil for
// 2xx status codes.
func FromStatus(status int, message string) *LMError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return Authentication(message)
	case status == http.StatusForbidden:
		return Permission(message)
	case status == http.StatusNotFound:
		return NotFound(message)
	case status == http.StatusTooManyRequests:
		return RateLimited(message, 0)
	case status >= 500:
		return Server(status, message)
	default:
		return Remote(status, message)
	}
}
