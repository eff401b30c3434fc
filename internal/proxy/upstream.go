package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
)

const (
	providerName = "sportsdata-upstream"

	defaultTimeout   = 10 * time.Second
	defaultBackoff   = 250 * time.Millisecond
	breakerTimeout   = 30 * time.Second
	breakerHalfOpen  = 1
	breakerMinCalls  = 3
	breakerTripRatio = 0.6
	errorBodyLimit   = 512
	maxBodyBytes     = 32 << 20
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UpstreamConfig controls how the proxy reaches the sports-data provider.
type UpstreamConfig struct {
	ScoresBaseURL string
	StatsBaseURL  string
	APIKey        string
	Timeout       time.Duration
	MaxAttempts   int
	Backoff       time.Duration
	HTTPClient    *http.Client
	Logger        *slog.Logger
	Recorder      *metrics.Recorder
}

// Upstream fetches raw JSON from the provider, appending the server-held key.
// Calls run through a circuit breaker and a bounded retrier.
type Upstream struct {
	scoresBase string
	statsBase  string
	apiKey     string
	client     httpDoer
	breaker    *gobreaker.CircuitBreaker
	retrier    *providers.Retrier
	logger     *slog.Logger
}

// NewUpstream builds an Upstream from cfg.
func NewUpstream(cfg UpstreamConfig) *Upstream {
	var client httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	u := &Upstream{
		scoresBase: strings.TrimSuffix(strings.TrimSpace(cfg.ScoresBaseURL), "/"),
		statsBase:  strings.TrimSuffix(strings.TrimSpace(cfg.StatsBaseURL), "/"),
		apiKey:     cfg.APIKey,
		client:     client,
		logger:     cfg.Logger,
	}
	u.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: breakerHalfOpen,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinCalls {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerTripRatio
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn(u.logger, "circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	u.retrier = providers.NewRetrier(cfg.Logger, cfg.Recorder, providerName, cfg.MaxAttempts, backoff).
		WithRetryPolicy(shouldRetry)
	return u
}

// State reports the circuit breaker state ("closed", "open" or "half-open").
func (u *Upstream) State() string {
	return u.breaker.State().String()
}

// Fetch returns the provider's body for endpoint after checking it is JSON.
func (u *Upstream) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte
	err := u.retrier.Do(ctx, func(ctx context.Context) error {
		out, err := u.breaker.Execute(func() (interface{}, error) {
			return u.fetchOnce(ctx, endpoint)
		})
		if err != nil {
			return err
		}
		body = out.([]byte)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (u *Upstream) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	base := sportsdata.UpstreamBase(endpoint, u.scoresBase, u.statsBase)
	target := base + "/" + endpoint + "?key=" + url.QueryEscape(u.apiKey)

	// Errors built here must not carry target: it contains the key.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &providers.FetchError{Endpoint: endpoint, Message: "build request"}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &providers.NetworkError{Endpoint: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "upstream rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.FetchError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &providers.NetworkError{Endpoint: endpoint, Err: stripURL(err)}
	}
	if !json.Valid(body) {
		return nil, &providers.FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "invalid JSON from upstream"}
	}
	return body, nil
}

// countsAsSuccess keeps client-side failures from tripping the breaker:
// caller cancellation and 4xx responses other than 429 say nothing about
// upstream health.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	if fErr, ok := providers.AsFetchError(err); ok && fErr.StatusCode >= 400 && fErr.StatusCode < 500 {
		return true
	}
	return false
}

func shouldRetry(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	return providers.IsRetryable(err)
}

// stripURL drops the *url.Error wrapper, whose message includes the request URL.
func stripURL(err error) error {
	var uErr *url.Error
	if errors.As(err, &uErr) && uErr.Err != nil {
		return uErr.Err
	}
	return err
}

// parseRetryAfter accepts delta-seconds or an HTTP date. Anything else is zero.
func parseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
