package workpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksRunOffTheSubmittingGoroutine(t *testing.T) {
	pool := New(2, 4)
	defer pool.Stop()

	done := make(chan struct{})
	ok := pool.TrySubmit(func() { close(done) })
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
}

func TestRejectsWhenSaturated(t *testing.T) {
	const (
		workers = 8
		queue   = 64
		events  = 200
	)

	pool := New(workers, queue)
	release := make(chan struct{})

	var completed atomic.Int64
	accepted := 0
	for range events {
		if pool.TrySubmit(func() {
			<-release
			completed.Add(1)
		}) {
			accepted++
		}
	}

	// The queue plus the workers bound what can be in flight; everything else
	// is rejected observably, not silently dropped.
	assert.GreaterOrEqual(t, accepted, queue)
	assert.LessOrEqual(t, accepted, queue+workers)
	assert.Equal(t, int64(events-accepted), pool.Rejected())

	close(release)
	pool.Stop()
	assert.Equal(t, int64(accepted), completed.Load(), "every accepted task ran")
}

func TestStopDrainsQueuedTasks(t *testing.T) {
	pool := New(1, 16)

	var completed atomic.Int64
	for range 10 {
		require.True(t, pool.TrySubmit(func() { completed.Add(1) }))
	}

	pool.Stop()
	assert.Equal(t, int64(10), completed.Load())
}

func TestTrySubmitAfterStopIsRejected(t *testing.T) {
	pool := New(1, 4)
	pool.Stop()

	// A gateway event landing during shutdown must be rejected, not panic.
	assert.False(t, pool.TrySubmit(func() { t.Error("task ran after Stop") }))
	assert.Equal(t, int64(1), pool.Rejected())

	pool.Stop()
	assert.False(t, pool.TrySubmit(func() {}))
}

func TestTrySubmitConcurrentWithStop(t *testing.T) {
	pool := New(2, 2)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				pool.TrySubmit(func() {})
			}
		}()
	}

	pool.Stop()
	wg.Wait()
}

func TestNewClampsWorkerCount(t *testing.T) {
	pool := New(0, -1)
	defer pool.Stop()

	done := make(chan struct{})
	// Queue capacity 0 still accepts when a worker is idle and waiting.
	for !pool.TrySubmit(func() { close(done) }) {
		time.Sleep(time.Millisecond)
	}
	<-done
}
