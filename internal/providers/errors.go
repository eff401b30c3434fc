package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// FetchError reports a non-success HTTP status, or a body that could not be decoded.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "fetch failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d: %s", e.Endpoint, e.StatusCode, msg)
	}
	return fmt.Sprintf("fetch %s: %s", e.Endpoint, msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NetworkError reports a request that could not complete (dns, dial, timeout, cancellation).
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fErr *FetchError
	if errors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var nErr *NetworkError
	if errors.As(err, &nErr) {
		return nErr, true
	}
	return nil, false
}

// IsTransportError reports whether err is a FetchError or NetworkError.
func IsTransportError(err error) bool {
	if _, ok := AsFetchError(err); ok {
		return true
	}
	_, ok := AsNetworkError(err)
	return ok
}

// IsRetryable reports whether another attempt could plausibly succeed.
// Rate limits, network failures and 5xx responses are retryable; caller
// cancellation and other 4xx responses are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if _, ok := AsNetworkError(err); ok {
		return true
	}
	if fErr, ok := AsFetchError(err); ok {
		return fErr.StatusCode == http.StatusTooManyRequests || fErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
