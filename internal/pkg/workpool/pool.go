// Package workpool runs independent tasks on a fixed set of workers and
// hands callers a Future for each submission.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is reported by futures submitted after Close.
var ErrClosed = errors.New("workpool: pool closed")

// Pool is a bounded worker pool. The zero value is not usable; call New.
type Pool struct {
	tasks   chan func()
	group   errgroup.Group
	mu      sync.RWMutex
	closed  bool
	sending sync.WaitGroup
	quit    chan struct{}
	workers int
	done    chan struct{}
}

// New starts workers goroutines draining a queue of the given capacity.
func New(workers, queue int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &Pool{
		tasks:   make(chan func(), queue),
		quit:    make(chan struct{}),
		workers: workers,
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.group.Go(func() error {
			for task := range p.tasks {
				task()
			}
			return nil
		})
	}
	return p
}

// Workers reports the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops intake and waits for queued tasks to finish or ctx to expire.
// Submissions blocked on a full queue resolve with ErrClosed. Tasks still
// running after ctx expires keep their worker until they return.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.quit)
		go func() {
			// tasks is closed only once no enqueue can still send on it
			p.sending.Wait()
			close(p.tasks)
			_ = p.group.Wait()
			close(p.done)
		}()
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("workpool: shutdown: %w", ctx.Err())
	}
}

func (p *Pool) enqueue(task func()) bool {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return false
	}
	p.sending.Add(1)
	p.mu.RUnlock()
	defer p.sending.Done()

	select {
	case p.tasks <- task:
		return true
	case <-p.quit:
		return false
	}
}

// Submit schedules fn on the pool. A panic inside fn resolves the future with
// an error instead of killing the worker.
func Submit[T any](p *Pool, fn func() T) *Future[T] {
	f := newFuture[T]()
	task := func() {
		var (
			val T
			err error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("workpool: task panic: %v", r)
				}
			}()
			val = fn()
		}()
		f.complete(val, err)
	}
	if !p.enqueue(task) {
		var zero T
		f.complete(zero, ErrClosed)
	}
	return f
}
