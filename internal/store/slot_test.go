package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

func TestSlotLoadsOnceAndCaches(t *testing.T) {
	rec := metrics.NewRecorder()
	slot := NewSlot("teams", rec, CloneSlice[string])
	var calls int
	load := func(ctx context.Context) ([]string, error) {
		_ = ctx
		calls++
		return []string{"bos", "lal"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := slot.Get(context.Background(), load)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected value %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}
	if rec.CacheMisses("teams") != 1 || rec.CacheHits("teams") != 2 {
		t.Fatalf("expected 1 miss and 2 hits, got %d/%d", rec.CacheMisses("teams"), rec.CacheHits("teams"))
	}
}

func TestSlotDoesNotCacheErrors(t *testing.T) {
	slot := NewSlot[[]string]("players", nil, nil)
	boom := errors.New("boom")
	var calls int
	load := func(ctx context.Context) ([]string, error) {
		_ = ctx
		calls++
		if calls == 1 {
			return nil, boom
		}
		return []string{"ok"}, nil
	}

	if _, err := slot.Get(context.Background(), load); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if slot.Loaded() {
		t.Fatalf("expected failed load to leave slot empty")
	}
	got, err := slot.Get(context.Background(), load)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected retry to succeed, got %v %v", got, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 loads, got %d", calls)
	}
}

func TestSlotSharesInFlightLoad(t *testing.T) {
	slot := NewSlot("teams", nil, CloneSlice[string])
	gate := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) ([]string, error) {
		_ = ctx
		if calls.Add(1) == 1 {
			close(started)
		}
		<-gate
		return []string{"bos"}, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := slot.Get(context.Background(), load)
		errs <- err
	}()
	<-started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := slot.Get(context.Background(), load)
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("expected all callers to succeed, got %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one shared load, got %d", got)
	}
}

func TestSlotCallerCancelDoesNotAbortSharedLoad(t *testing.T) {
	slot := NewSlot[int]("stats", nil, nil)
	gate := make(chan struct{})
	var sawCanceled atomic.Bool
	load := func(ctx context.Context) (int, error) {
		<-gate
		if ctx.Err() != nil {
			sawCanceled.Store(true)
		}
		return 42, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := slot.Get(ctx, load)
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled caller to return ctx error, got %v", err)
	}

	close(gate)
	got, err := slot.Get(context.Background(), load)
	if err != nil || got != 42 {
		t.Fatalf("expected shared load result, got %d %v", got, err)
	}
	if sawCanceled.Load() {
		t.Fatalf("expected load context to be detached from caller cancellation")
	}
}

func TestSlotReturnsCopies(t *testing.T) {
	slot := NewSlot("teams", nil, CloneSlice[string])
	load := func(ctx context.Context) ([]string, error) {
		_ = ctx
		return []string{"bos"}, nil
	}

	first, _ := slot.Get(context.Background(), load)
	first[0] = "mutated"

	second, _ := slot.Get(context.Background(), load)
	if second[0] != "bos" {
		t.Fatalf("expected cached value to be isolated from callers, got %s", second[0])
	}
	peeked, ok := slot.Peek()
	if !ok || peeked[0] != "bos" {
		t.Fatalf("expected peek to return cached copy, got %v %v", peeked, ok)
	}
}

func TestCloneHelpersHandleNil(t *testing.T) {
	if CloneSlice[int](nil) != nil {
		t.Fatalf("expected nil slice clone")
	}
	if CloneMap[int, int](nil) != nil {
		t.Fatalf("expected nil map clone")
	}
	m := CloneMap(map[int]string{1: "a"})
	if m[1] != "a" {
		t.Fatalf("expected map contents copied")
	}
}
