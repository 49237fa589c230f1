// Package workpool provides a bounded worker pool with a fixed-capacity queue
// and non-blocking submission.
//
// Typical usage:
//
//	pool := workpool.New(8, 64)
//	if !pool.TrySubmit(func() { handle(event) }) {
//	    log.Println("[WARN] queue full, event dropped")
//	}
//
//	// on shutdown
//	pool.Stop()
//
// The package is intentionally minimal: no retries, no priorities, no
// cancellation of running tasks. When the queue is full TrySubmit rejects
// instead of blocking, so a pathological task cannot cause unbounded memory
// growth; rejections are counted and observable via Rejected.
package workpool

import (
	"sync"
	"sync/atomic"
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks    chan func()
	wg       sync.WaitGroup
	rejected atomic.Int64

	mu      sync.RWMutex
	stopped bool
}

// New creates a pool with the given worker count and queue capacity and starts
// its workers immediately.
func New(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{tasks: make(chan func(), queueSize)}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// TrySubmit enqueues a task without blocking. It returns false and counts a
// rejection when the queue is full or the pool is stopped; submitting to a
// stopped pool is safe, late events during shutdown are simply rejected.
func (p *Pool) TrySubmit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.rejected.Add(1)
		return false
	}
	select {
	case p.tasks <- task:
		return true
	default:
		p.rejected.Add(1)
		return false
	}
}

// Rejected returns how many submissions have been rejected so far.
func (p *Pool) Rejected() int64 {
	return p.rejected.Load()
}

// Stop closes the queue, runs the remaining queued tasks and waits for all
// workers to finish. Stop is idempotent.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.tasks)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
