package store

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
)

// LoadFunc produces the value for an empty slot.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Slot is a write-once, thread-safe cache cell. The first successful load is
// kept for the life of the slot; failed loads are not stored, so the next
// caller retries. Concurrent misses share one in-flight load.
type Slot[T any] struct {
	name     string
	recorder *metrics.Recorder
	clone    func(T) T

	mu     sync.RWMutex
	value  T
	loaded bool
	group  singleflight.Group
}

// NewSlot builds an empty slot. clone copies values handed to callers; nil means values are returned as stored.
func NewSlot[T any](name string, recorder *metrics.Recorder, clone func(T) T) *Slot[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Slot[T]{
		name:     name,
		recorder: recorder,
		clone:    clone,
	}
}

// Name returns the slot label used for metrics and logs.
func (s *Slot[T]) Name() string {
	return s.name
}

// Get returns the cached value, loading it on a miss.
// The shared load is detached from any single caller's cancellation; a caller
// whose ctx ends stops waiting without aborting the load for the others.
func (s *Slot[T]) Get(ctx context.Context, load LoadFunc[T]) (T, error) {
	if v, ok := s.peek(); ok {
		s.recorder.RecordCacheLookup(s.name, true)
		return s.clone(v), nil
	}
	s.recorder.RecordCacheLookup(s.name, false)

	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.name, func() (any, error) {
		if v, ok := s.peek(); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		return s.store(v), nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return s.clone(res.Val.(T)), nil
	}
}

// Peek returns a copy of the cached value without loading.
func (s *Slot[T]) Peek() (T, bool) {
	v, ok := s.peek()
	if !ok {
		return v, false
	}
	return s.clone(v), true
}

// Loaded reports whether the slot holds a value.
func (s *Slot[T]) Loaded() bool {
	_, ok := s.peek()
	return ok
}

func (s *Slot[T]) peek() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loaded
}

// store keeps v unless a value is already present, and returns the kept value.
func (s *Slot[T]) store(v T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.value = v
		s.loaded = true
	}
	return s.value
}

// CloneSlice is a clone func for slices of plain values.
func CloneSlice[E any](in []E) []E {
	if in == nil {
		return nil
	}
	out := make([]E, len(in))
	copy(out, in)
	return out
}

// CloneMap is a clone func for maps of plain values.
func CloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
