// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/directorscut/internal/core/catalog"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

/*
TestSnapshot_Cooldown: a second load inside the cooldown does not fetch.
*/
func TestSnapshot_Cooldown(t *testing.T) {
	var calls atomic.Int32
	clock := &fakeClock{now: time.Unix(0, 0)}
	snapshot := catalog.NewSnapshot(func(context.Context) ([]int, error) {
		return []int{int(calls.Add(1))}, nil
	}, 1500*time.Millisecond).WithClock(clock.Now)

	first, err := snapshot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, first)

	clock.Advance(time.Second)
	second, err := snapshot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, second)

	clock.Advance(600 * time.Millisecond)
	third, err := snapshot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, third)
	assert.Equal(t, int32(2), calls.Load())
}

/*
TestSnapshot_InFlightJoin: concurrent loads share one fetch.
*/
func TestSnapshot_InFlightJoin(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	snapshot := catalog.NewSnapshot(func(context.Context) ([]int, error) {
		calls.Add(1)
		<-release
		return []int{7}, nil
	}, time.Minute)

	var wg sync.WaitGroup
	results := make([][]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = snapshot.Load(context.Background())
		}(i)
	}

	// Let the goroutines pile up on the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, result := range results {
		assert.Equal(t, []int{7}, result)
	}
}

/*
TestSnapshot_RefreshAndErrors: Refresh bypasses the cooldown, a failed fetch
keeps the last good list.
*/
func TestSnapshot_RefreshAndErrors(t *testing.T) {
	var calls atomic.Int32
	failing := atomic.Bool{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	snapshot := catalog.NewSnapshot(func(context.Context) ([]int, error) {
		if failing.Load() {
			return nil, errors.New("store unreachable")
		}
		return []int{int(calls.Add(1))}, nil
	}, 3*time.Second).WithClock(clock.Now)

	_, err := snapshot.Load(context.Background())
	require.NoError(t, err)

	refreshed, err := snapshot.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, refreshed)

	failing.Store(true)
	clock.Advance(5 * time.Second)
	_, err = snapshot.Load(context.Background())
	assert.Error(t, err)

	failing.Store(false)
	again, err := snapshot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, again)
}

/*
TestSnapshot_RefreshWinsOverOlderFetch: a fetch that started before a write
finishes after the post-write Refresh and must not replace the fresher list.
*/
func TestSnapshot_RefreshWinsOverOlderFetch(t *testing.T) {
	var version atomic.Int32
	version.Store(1)

	started := make(chan struct{})
	release := make(chan struct{})
	var slowOnce sync.Once

	snapshot := catalog.NewSnapshot(func(context.Context) ([]int, error) {
		seen := int(version.Load())
		blocked := false
		slowOnce.Do(func() { blocked = true })
		if blocked {
			close(started)
			<-release
		}
		return []int{seen}, nil
	}, time.Minute)

	slow := make(chan []int, 1)
	go func() {
		items, _ := snapshot.Load(context.Background())
		slow <- items
	}()
	<-started

	version.Store(2)
	refreshed, err := snapshot.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, refreshed)

	close(release)
	assert.Equal(t, []int{1}, <-slow, "the caller that joined the older fetch still gets its result")

	current, err := snapshot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, current)
}
