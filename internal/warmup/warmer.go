package warmup

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

const defaultInterval = 30 * time.Second

// Step is one cache fill run by the Warmer.
type Step struct {
	Name string
	Load func(ctx context.Context) error
}

// Warmer primes the session caches on boot and retries on an interval until
// every step has succeeded once.
type Warmer struct {
	steps    []Step
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the warmer's progress.
type Status struct {
	Warm                bool
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether every step has completed successfully.
func (s Status) IsReady() bool {
	return s.Warm
}

// New constructs a Warmer with sane defaults.
func New(steps []Step, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Warmer{
		steps:    steps,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start runs the steps in the background. Calling Start again is a no-op.
func (w *Warmer) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.startMu.Unlock()

	w.ticker = time.NewTicker(w.interval)

	go func() {
		defer close(w.finished)
		defer w.stopTicker()
		logging.Info(w.logger, "warmup started", logging.FieldDurationMS, w.interval.Milliseconds())

		if w.runOnce(ctx) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				logging.Info(w.logger, "warmup stopped")
				return
			case <-w.done:
				logging.Info(w.logger, "warmup stopped")
				return
			case <-w.ticker.C:
				if w.runOnce(ctx) {
					return
				}
			}
		}
	}()
}

// Stop halts any pending retries.
func (w *Warmer) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopTicker()
	})
	return nil
}

// Done is closed once the background loop exits.
func (w *Warmer) Done() <-chan struct{} {
	return w.finished
}

// runOnce executes every step and reports whether all of them succeeded.
func (w *Warmer) runOnce(ctx context.Context) bool {
	start := w.now()
	w.recordAttempt(start)

	var errs []error
	for _, step := range w.steps {
		if step.Load == nil {
			continue
		}
		stepStart := time.Now()
		if err := step.Load(ctx); err != nil {
			logging.Error(w.logger, "warmup step failed", err,
				"step", step.Name,
				logging.FieldDurationMS, time.Since(stepStart).Milliseconds(),
			)
			errs = append(errs, err)
			continue
		}
		logging.Info(w.logger, "warmup step complete",
			"step", step.Name,
			logging.FieldDurationMS, time.Since(stepStart).Milliseconds(),
		)
	}

	err := errors.Join(errs...)
	w.metrics.RecordWarmupCycle(time.Since(start), err)
	if err != nil {
		w.recordFailure(err)
		return false
	}
	w.recordSuccess(w.now())
	logging.Info(w.logger, "warmup complete", logging.FieldDurationMS, time.Since(start).Milliseconds())
	return true
}

func (w *Warmer) stopTicker() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Warmer) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.LastAttempt = at
}

func (w *Warmer) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Warm = true
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
}

func (w *Warmer) recordFailure(err error) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	w.status.LastError = err.Error()
}

// Status returns a snapshot of the warmer's progress.
func (w *Warmer) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
