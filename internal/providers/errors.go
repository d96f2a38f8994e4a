package providers

import (
	"strconv"
	"strings"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

type serverError struct {
	statusCode int
	body       string
}

func (e *serverError) Error() string {
	return "server error (status " + strconv.Itoa(e.statusCode) + "): " + e.body
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	_, ok := err.(*authError)
	return ok
}

// isRetryable reports whether a transport attempt should be retried.
// Rate limits and server-side failures are transient; auth errors never are.
func isRetryable(err error) bool {
	switch err.(type) {
	case *rateLimitError, *serverError:
		return true
	default:
		return false
	}
}

// quotaMarkers are the substrings that classify an error as quota exhaustion.
var quotaMarkers = []string{"429", "quota", "rate", "resourceexhausted", "resource exhausted"}

// IsQuotaError classifies an error as quota or rate-limit exhaustion. The
// resolver uses it to abandon a provider's remaining model variants instead
// of probing each one against a spent quota.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(*rateLimitError); ok {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
