// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a complete list from the store.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// snapshotKey is the only singleflight key; a Snapshot guards one resource.
const snapshotKey = "snapshot"

// Snapshot suppresses redundant bursts of full-list fetches.
//
// A [Snapshot.Load] while a fetch is in flight joins that fetch instead of
// issuing another. A Load within the cooldown of the last completed fetch
// returns that result without touching the store. This is not a cache: there
// is no expiry beyond the cooldown and nothing invalidates it early, except
// an explicit [Snapshot.Refresh] after a successful write.
//
// Returned slices are shared between callers and must be treated as read-only.
type Snapshot[T any] struct {
	fetch    FetchFunc[T]
	cooldown time.Duration
	now      func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	items    []T
	loadedAt time.Time
	loaded   bool

	// generation increases on every Refresh. A fetch publishes its result only
	// if no Refresh started after it.
	generation uint64
}

// NewSnapshot wraps fetch with a cooldown window.
func NewSnapshot[T any](fetch FetchFunc[T], cooldown time.Duration) *Snapshot[T] {
	return &Snapshot[T]{fetch: fetch, cooldown: cooldown, now: time.Now}
}

// WithClock replaces the time source. Tests use it to step through cooldowns.
func (s *Snapshot[T]) WithClock(now func() time.Time) *Snapshot[T] {
	s.now = now
	return s
}

// Load returns the recent list, fetching only when the cooldown has passed.
func (s *Snapshot[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	if s.loaded && s.now().Sub(s.loadedAt) < s.cooldown {
		items := s.items
		s.mu.Unlock()
		return items, nil
	}
	s.mu.Unlock()

	return s.shared(ctx)
}

// Refresh fetches regardless of the cooldown. A fetch already in flight may
// predate the write being published, so it is neither joined nor allowed to
// overwrite the refreshed list when it completes.
func (s *Snapshot[T]) Refresh(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()

	s.group.Forget(snapshotKey)
	return s.shared(ctx)
}

// shared runs at most one fetch at a time. The fetch is detached from the
// caller's cancellation because other callers may be waiting on it.
func (s *Snapshot[T]) shared(ctx context.Context) ([]T, error) {
	detached := context.WithoutCancel(ctx)

	result, err, _ := s.group.Do(snapshotKey, func() (any, error) {
		s.mu.Lock()
		generation := s.generation
		s.mu.Unlock()

		items, err := s.fetch(detached)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if generation == s.generation {
			s.items = items
			s.loadedAt = s.now()
			s.loaded = true
		}
		s.mu.Unlock()

		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}
