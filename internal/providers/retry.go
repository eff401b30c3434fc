package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	fallbackProviderName = "provider"
)

type backoffFunc func(attempt int) time.Duration

// Retrier runs an operation with bounded attempts and linear, jittered backoff.
// Rate limit errors wait for their Retry-After instead of the backoff.
type Retrier struct {
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	shouldRetry  func(error) bool
	rng          *rand.Rand
	rngMu        sync.Mutex
}

// NewRetrier builds a Retrier. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetrier(logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, backoff time.Duration) *Retrier {
	return NewRetrierWithRNG(logger, recorder, providerName, nil, maxAttempts, backoff)
}

// NewRetrierWithRNG is NewRetrier with a caller-supplied jitter source.
func NewRetrierWithRNG(logger *slog.Logger, recorder *metrics.Recorder, providerName string, rng *rand.Rand, maxAttempts int, backoff time.Duration) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if providerName == "" {
		providerName = fallbackProviderName
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Retrier{
		logger:       logger,
		recorder:     recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		shouldRetry: IsRetryable,
		rng:         rng,
	}
}

// WithRetryPolicy replaces the retry classifier (IsRetryable by default).
func (r *Retrier) WithRetryPolicy(fn func(error) bool) *Retrier {
	if fn != nil {
		r.shouldRetry = fn
	}
	return r
}

// MaxAttempts returns the configured attempt bound.
func (r *Retrier) MaxAttempts() int {
	return r.maxAttempts
}

// Do calls fn until it succeeds, returns a non-retryable error, ctx ends, or attempts run out.
// Every attempt is recorded against the provider name.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		err := fn(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !r.shouldRetry(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, attempt)
		logWithProvider(ctx, r.log(ctx), slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	logWithProvider(ctx, r.log(ctx), slog.LevelWarn, r.providerName, "provider fetch failed",
		"max_attempts", r.maxAttempts,
		"err", lastErr,
	)
	return lastErr
}

func (r *Retrier) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

func (r *Retrier) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, r.logger)
}
