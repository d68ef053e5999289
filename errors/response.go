package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON envelope returned to clients.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Retryable  bool      `json:"retryable"`
	Suggestion string    `json:"suggestion,omitempty"`
	RetryAfter int       `json:"retry_after,omitempty"`
}

// ToResponse converts an LMError to an ErrorResponse for JSON serialization.
func (e *LMError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:       e.Code,
			Message:    e.Message,
			Retryable:  e.Retryable,
			Suggestion: e.Suggestion,
			RetryAfter: e.RetryAfter,
		},
	}
}

// AsLMError converts an error to an *LMError if possible.
func AsLMError(err error) (*LMError, bool) {
	var lmErr *LMError
	if stderrors.As(err, &lmErr) {
		return lmErr, true
	}
	return nil, false
}

// is reports whether err is an *LMError with the given code.
func is(err error, code ErrorCode) bool {
	var lmErr *LMError
	return stderrors.As(err, &lmErr) && lmErr.Code == code
}

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool { return is(err, ErrCodeConfig) }

// IsInvalidInput checks if an error is an invalid-input error.
func IsInvalidInput(err error) bool { return is(err, ErrCodeInvalidInput) }

// IsWriteDisabled checks if an error is a write-disabled error.
func IsWriteDisabled(err error) bool { return is(err, ErrCodeWriteDisabled) }

// IsAuthentication checks if an error is an authentication error.
func IsAuthentication(err error) bool { return is(err, ErrCodeAuth) }

// IsPermission checks if an error is a permission error.
func IsPermission(err error) bool { return is(err, ErrCodePermission) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return is(err, ErrCodeNotFound) }

// IsRateLimited checks if an error is a rate-limit error.
func IsRateLimited(err error) bool { return is(err, ErrCodeRateLimited) }

// IsServer checks if an error is a server error.
func IsServer(err error) bool { return is(err, ErrCodeServer) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return is(err, ErrCodeConnection) }

// IsRetryable checks if an error is transient and safe to retry.
func IsRetryable(err error) bool {
	var lmErr *LMError
	return stderrors.As(err, &lmErr) && lmErr.Retryable
}
