package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit type", &rateLimitError{}, true},
		{"429 in message", fmt.Errorf("API error (status 429): too many requests"), true},
		{"quota in message", errors.New("daily Quota exceeded"), true},
		{"rate in message", errors.New("rate limit reached"), true},
		{"resource exhausted", errors.New("rpc error: ResourceExhausted"), true},
		{"auth error", &authError{message: "bad key"}, false},
		{"generic", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaError(tt.err); got != tt.want {
				t.Errorf("IsQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !isRetryable(&rateLimitError{}) {
		t.Error("rate limit errors should be retryable")
	}
	if !isRetryable(&serverError{statusCode: 503, body: "unavailable"}) {
		t.Error("server errors should be retryable")
	}
	if isRetryable(&authError{message: "denied"}) {
		t.Error("auth errors should not be retryable")
	}
	if isRetryable(errors.New("parse failure")) {
		t.Error("generic errors should not be retryable")
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&authError{message: "denied"}) {
		t.Error("expected auth error to be detected")
	}
	if IsAuthError(errors.New("denied")) {
		t.Error("generic error should not be an auth error")
	}
}

func TestRetryWithBackoffStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		return &authError{message: "denied"}
	})
	if calls != 1 {
		t.Errorf("expected 1 call for auth error, got %d", calls)
	}
	if !IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestRetryWithBackoffSucceedsAfterRateLimit(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		calls++
		if calls < 2 {
			return &rateLimitError{}
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestRetryWithBackoffRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, 3, func() error {
		return &rateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
