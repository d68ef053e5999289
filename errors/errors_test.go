package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  ErrorCode
		wantNil   bool
		retryable bool
	}{
		{name: "ok", status: 200, wantNil: true},
		{name: "created", status: 201, wantNil: true},
		{name: "no content", status: 204, wantNil: true},
		{name: "unauthorized", status: 401, wantCode: ErrCodeAuth},
		{name: "forbidden", status: 403, wantCode: ErrCodePermission},
		{name: "not found", status: 404, wantCode: ErrCodeNotFound},
		{name: "rate limited", status: 429, wantCode: ErrCodeRateLimited},
		{name: "internal", status: 500, wantCode: ErrCodeServer, retryable: true},
		{name: "bad gateway", status: 502, wantCode: ErrCodeServer, retryable: true},
		{name: "unavailable", status: 503, wantCode: ErrCodeServer, retryable: true},
		{name: "bad request", status: 400, wantCode: ErrCodeRemote},
		{name: "conflict", status: 409, wantCode: ErrCodeRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, "boom")
			if tt.wantNil {
				if err != nil {
					t.Fatalf("expected nil for status %d, got %v", tt.status, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error for status %d", tt.status)
			}
			if err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", err.Code, tt.wantCode)
			}
			if err.HTTPStatus != tt.status {
				t.Errorf("http status = %d, want %d", err.HTTPStatus, tt.status)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", err.Retryable, tt.retryable)
			}
		})
	}
}

func TestRetryablePredicates(t *testing.T) {
	if !IsRetryable(Server(503, "down")) {
		t.Error("5xx should be retryable")
	}
	if !IsRetryable(Connection(stderrors.New("dial tcp: refused"), "connect failed")) {
		t.Error("connection failure should be retryable")
	}
	if IsRetryable(RateLimited("slow down", 30)) {
		t.Error("429 must not be retryable")
	}
	if IsRetryable(Authentication("bad token")) {
		t.Error("401 must not be retryable")
	}
	if IsRetryable(stderrors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestRateLimitedRetryAfter(t *testing.T) {
	err := RateLimited("too many requests", 42)
	if err.RetryAfter != 42 {
		t.Errorf("retry after = %d, want 42", err.RetryAfter)
	}
	if !strings.Contains(err.Suggestion, "42 seconds") {
		t.Errorf("suggestion should mention the wait: %q", err.Suggestion)
	}

	err = RateLimited("too many requests", 0)
	if strings.Contains(err.Suggestion, "seconds") {
		t.Errorf("no wait hint when Retry-After is absent: %q", err.Suggestion)
	}
}

func TestErrorFormatting(t *testing.T) {
	err := NotFound("device 42 not found")
	got := err.Error()
	if !strings.Contains(got, "NOT_FOUND") || !strings.Contains(got, "404") {
		t.Errorf("Error() = %q, want code and status", got)
	}

	cause := stderrors.New("dial tcp: i/o timeout")
	conn := Connection(cause, "request failed")
	if !strings.Contains(conn.Error(), "i/o timeout") {
		t.Errorf("Error() = %q, want cause included", conn.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Connection(cause, "connect failed")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	wrapped := fmt.Errorf("tool failed: %w", err)
	var lmErr *LMError
	if !stderrors.As(wrapped, &lmErr) {
		t.Fatal("errors.As should find *LMError through wrapping")
	}
	if lmErr.Code != ErrCodeConnection {
		t.Errorf("code = %s, want %s", lmErr.Code, ErrCodeConnection)
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
		name string
	}{
		{Configuration("missing portal"), IsConfiguration, "configuration"},
		{InvalidInput("bad severity"), IsInvalidInput, "invalid input"},
		{WriteDisabled(), IsWriteDisabled, "write disabled"},
		{Authentication("rejected"), IsAuthentication, "authentication"},
		{Permission("no access"), IsPermission, "permission"},
		{NotFound("gone"), IsNotFound, "not found"},
		{RateLimited("slow down", 0), IsRateLimited, "rate limited"},
		{Server(500, "oops"), IsServer, "server"},
		{Connection(nil, "refused"), IsConnection, "connection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate did not match %v", tt.err)
			}
			if tt.pred(stderrors.New("other")) {
				t.Error("predicate matched unrelated error")
			}
		})
	}
}

func TestWriteDisabledStatus(t *testing.T) {
	err := WriteDisabled()
	if err.HTTPStatus != http.StatusForbidden {
		t.Errorf("status = %d, want 403", err.HTTPStatus)
	}
	if !strings.Contains(err.Suggestion, "LM_ENABLE_WRITE_OPERATIONS") {
		t.Errorf("suggestion should name the env var: %q", err.Suggestion)
	}
}

func TestToResponse(t *testing.T) {
	err := RateLimited("too many requests", 15)
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeRateLimited {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if resp.Error.RetryAfter != 15 {
		t.Errorf("retry after = %d, want 15", resp.Error.RetryAfter)
	}
	if resp.Error.Retryable {
		t.Error("rate limited must not be marked retryable")
	}
}

func TestAsLMError(t *testing.T) {
	if _, ok := AsLMError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
	orig := Server(500, "oops")
	got, ok := AsLMError(fmt.Errorf("wrapped: %w", orig))
	if !ok || got != orig {
		t.Error("wrapped *LMError should convert to the original")
	}
}
