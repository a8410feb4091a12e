// Package worker bounds how many extractions run at once across requests.
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/anime-shed/doc-insight-go/internal/logger"
)

// ErrPoolClosed is returned by Do after Close
var ErrPoolClosed = errors.New("worker pool is closed")

type job struct {
	fn   func()
	done chan struct{}
}

// Pool runs submitted jobs on a fixed set of goroutines
type Pool struct {
	workers  int
	jobQueue chan job
	wg       sync.WaitGroup
	start    sync.Once
	stop     sync.Once
	mu       sync.RWMutex
	closed   bool
}

// NewPool creates a pool with the specified number of workers; zero or less means one per CPU
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pool{
		workers:  workers,
		jobQueue: make(chan job, workers*2),
	}
}

// Workers returns the pool size
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the workers. Calling it more than once has no effect.
func (p *Pool) Start() {
	p.start.Do(func() {
		for i := 0; i < p.workers; i++ {
			go p.worker()
		}
	})
}

func (p *Pool) worker() {
	for j := range p.jobQueue {
		p.run(j)
	}
}

// run executes one job; a panicking job is logged and the worker keeps serving
func (p *Pool) run(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithField("panic", rec).Error("Worker job panicked")
		}
		close(j.done)
		p.wg.Done()
	}()
	j.fn()
}

// Submit queues a job without waiting for it
func (p *Pool) Submit(fn func()) error {
	_, err := p.enqueue(context.Background(), fn)
	return err
}

// Do runs fn on a worker and waits for it to finish or for ctx to be done.
// When ctx ends first the job still runs to completion in the background and
// ctx.Err() is returned.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	done, err := p.enqueue(ctx, fn)
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) enqueue(ctx context.Context, fn func()) (chan struct{}, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrPoolClosed
	}

	j := job{fn: fn, done: make(chan struct{})}
	p.wg.Add(1)
	select {
	case p.jobQueue <- j:
		return j.done, nil
	case <-ctx.Done():
		p.wg.Done()
		return nil, ctx.Err()
	}
}

// Wait blocks until every submitted job has completed
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close stops accepting jobs and lets the workers drain the queue
func (p *Pool) Close() {
	p.stop.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobQueue)
		p.mu.Unlock()
	})
}
