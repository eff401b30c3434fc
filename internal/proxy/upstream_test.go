package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/testutil"
)

const testKey = "s3cr3t-key"

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestUpstream(rt roundTripperFunc, attempts int, rec *metrics.Recorder) *Upstream {
	logger, _ := testutil.NewBufferLogger()
	return NewUpstream(UpstreamConfig{
		ScoresBaseURL: "https://scores.example/json/",
		StatsBaseURL:  "https://stats.example/json",
		APIKey:        testKey,
		MaxAttempts:   attempts,
		Backoff:       time.Millisecond,
		HTTPClient:    &http.Client{Transport: rt},
		Logger:        logger,
		Recorder:      rec,
	})
}

func TestUpstreamRoutesByEndpointAndAppendsKey(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	up := newTestUpstream(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		seen = append(seen, r.URL.String())
		mu.Unlock()
		return jsonResponse(http.StatusOK, `[]`), nil
	}, 1, nil)

	for _, ep := range []string{"AllTeams", "PlayerSeasonStats/2025", "PlayerGameStatsByDate/2025-01-01"} {
		if _, err := up.Fetch(context.Background(), ep); err != nil {
			t.Fatalf("fetch %s: %v", ep, err)
		}
	}

	want := []string{
		"https://scores.example/json/AllTeams?key=" + testKey,
		"https://stats.example/json/PlayerSeasonStats/2025?key=" + testKey,
		"https://stats.example/json/PlayerGameStatsByDate/2025-01-01?key=" + testKey,
	}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("request %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestUpstreamReturnsBodyUnmodified(t *testing.T) {
	raw := `[{"TeamID":2,"Key":"BOS","Extra":{"nested":true}}]`
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, raw), nil
	}, 1, nil)

	body, err := up.Fetch(context.Background(), "AllTeams")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != raw {
		t.Fatalf("expected raw body, got %s", body)
	}
}

func TestUpstreamRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	rec := metrics.NewRecorder()
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		if calls.Add(1) < 3 {
			return jsonResponse(http.StatusBadGateway, `oops`), nil
		}
		return jsonResponse(http.StatusOK, `{"ok":true}`), nil
	}, 3, rec)

	body, err := up.Fetch(context.Background(), "AllTeams")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", body)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", calls.Load())
	}
	if rec.ProviderCalls(providerName) != 3 || rec.ProviderErrors(providerName) != 2 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot(providerName))
	}
}

func TestUpstreamClientErrorsDoNotRetryOrTrip(t *testing.T) {
	var calls atomic.Int32
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusNotFound, `{"message":"no such season"}`), nil
	}, 3, nil)

	for i := 0; i < 5; i++ {
		_, err := up.Fetch(context.Background(), "Games/1900")
		fErr, ok := providers.AsFetchError(err)
		if !ok || fErr.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404 fetch error, got %v", err)
		}
	}
	if calls.Load() != 5 {
		t.Fatalf("expected one call per fetch, got %d", calls.Load())
	}
	if up.State() != gobreaker.StateClosed.String() {
		t.Fatalf("expected breaker closed, got %s", up.State())
	}
}

func TestUpstreamBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusServiceUnavailable, `down`), nil
	}, 1, nil)

	for i := 0; i < breakerMinCalls; i++ {
		if _, err := up.Fetch(context.Background(), "AllTeams"); err == nil {
			t.Fatalf("expected failure")
		}
	}
	if up.State() != gobreaker.StateOpen.String() {
		t.Fatalf("expected breaker open, got %s", up.State())
	}

	_, err := up.Fetch(context.Background(), "AllTeams")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if calls.Load() != breakerMinCalls {
		t.Fatalf("expected open breaker to short-circuit, got %d calls", calls.Load())
	}
}

func TestUpstreamOpenBreakerIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusInternalServerError, `down`), nil
	}, breakerMinCalls, nil)

	_, _ = up.Fetch(context.Background(), "AllTeams")
	if up.State() != gobreaker.StateOpen.String() {
		t.Fatalf("expected breaker open after retries, got %s", up.State())
	}
	before := calls.Load()
	if _, err := up.Fetch(context.Background(), "AllTeams"); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if calls.Load() != before {
		t.Fatalf("expected no upstream calls while open")
	}
}

func TestUpstreamRateLimit(t *testing.T) {
	rec := metrics.NewRecorder()
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, `slow down`)
		resp.Header.Set("Retry-After", "7")
		resp.Header.Set("X-RateLimit-Remaining", "0")
		return resp, nil
	}, 1, rec)

	_, err := up.Fetch(context.Background(), "AllTeams")
	rlErr, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rlErr.RetryAfter != 7*time.Second || rlErr.Remaining != "0" {
		t.Fatalf("unexpected rate limit details %+v", rlErr)
	}
	if rec.RateLimitHits(providerName) != 1 || rec.LastRetryAfter(providerName) != 7*time.Second {
		t.Fatalf("expected rate limit recorded, got %+v", rec.Snapshot(providerName))
	}
}

func TestUpstreamRejectsInvalidJSON(t *testing.T) {
	up := newTestUpstream(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `<html>maintenance</html>`), nil
	}, 1, nil)

	_, err := up.Fetch(context.Background(), "AllTeams")
	fErr, ok := providers.AsFetchError(err)
	if !ok || !strings.Contains(fErr.Message, "invalid JSON") {
		t.Fatalf("expected invalid JSON error, got %v", err)
	}
}

func TestUpstreamNetworkErrorNeverExposesKey(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	up := NewUpstream(UpstreamConfig{
		ScoresBaseURL: "https://scores.example",
		StatsBaseURL:  "https://stats.example",
		APIKey:        testKey,
		MaxAttempts:   2,
		Backoff:       time.Millisecond,
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		})},
		Logger: logger,
	})

	_, err := up.Fetch(context.Background(), "AllTeams")
	if _, ok := providers.AsNetworkError(err); !ok {
		t.Fatalf("expected network error, got %v", err)
	}
	if strings.Contains(err.Error(), testKey) {
		t.Fatalf("error leaked key: %v", err)
	}
	if strings.Contains(buf.String(), testKey) {
		t.Fatalf("logs leaked key: %s", buf.String())
	}
}

func TestUpstreamCallerCancellationDoesNotTrip(t *testing.T) {
	up := newTestUpstream(func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	}, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		if _, err := up.Fetch(ctx, "AllTeams"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", err)
		}
	}
	if up.State() != gobreaker.StateClosed.String() {
		t.Fatalf("expected breaker closed, got %s", up.State())
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Duration{
		"":                              0,
		"15":                            15 * time.Second,
		"-3":                            0,
		"soon":                          0,
		"Wed, 01 Jan 2025 12:00:30 GMT": 30 * time.Second,
		"Wed, 01 Jan 2025 11:59:00 GMT": 0,
	}
	for raw, want := range cases {
		if got := parseRetryAfter(raw, now); got != want {
			t.Fatalf("parseRetryAfter(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestCountsAsSuccess(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{context.Canceled, true},
		{&providers.FetchError{StatusCode: http.StatusNotFound}, true},
		{&providers.FetchError{StatusCode: http.StatusInternalServerError}, false},
		{&providers.FetchError{StatusCode: http.StatusOK, Message: "invalid JSON from upstream"}, false},
		{&providers.RateLimitError{StatusCode: http.StatusTooManyRequests}, false},
		{&providers.NetworkError{Err: errors.New("dial")}, false},
	}
	for _, tc := range cases {
		if got := countsAsSuccess(tc.err); got != tc.want {
			t.Fatalf("countsAsSuccess(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
