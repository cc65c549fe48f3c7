// Package dispatch runs operations on bounded worker pools and hands their
// results back through single-fulfilment futures.
package dispatch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// DefaultIOWorkers sizes the I/O pool when no size is configured
const DefaultIOWorkers = 64

// Pool bounds how many operations of one kind run at once
type Pool struct {
	name string
	size int64
	sem  *semaphore.Weighted
}

// NewPool creates a pool running at most size operations concurrently
func NewPool(name string, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		name: name,
		size: int64(size),
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Name returns the pool name
func (p *Pool) Name() string { return p.name }

// Size returns the pool's concurrency limit
func (p *Pool) Size() int { return int(p.size) }

// Dispatcher holds the CPU-bound and I/O-bound pools
type Dispatcher struct {
	CPU *Pool
	IO  *Pool
}

// New creates a dispatcher; non-positive sizes fall back to the defaults
func New(cpuWorkers, ioWorkers int) *Dispatcher {
	if cpuWorkers <= 0 {
		cpuWorkers = runtime.GOMAXPROCS(0)
	}
	if ioWorkers <= 0 {
		ioWorkers = DefaultIOWorkers
	}
	return &Dispatcher{
		CPU: NewPool("cpu", cpuWorkers),
		IO:  NewPool("io", ioWorkers),
	}
}

// Future is the result slot of one submitted operation. It is fulfilled exactly once.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) fulfil(val T, err error) {
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
	})
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx ends. Abandoning a
// future does not stop the operation behind it.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit runs fn on pool p. The pool slot is acquired inside the new
// goroutine, so Submit itself never blocks. A panic in fn fails the future.
func Submit[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		var zero T

		if err := p.sem.Acquire(ctx, 1); err != nil {
			f.fulfil(zero, fmt.Errorf("%s pool: %w", p.name, err))
			return
		}
		defer p.sem.Release(1)

		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("Operation on %s pool panicked: %v", p.name, r)
				f.fulfil(zero, fmt.Errorf("%s pool: operation panicked: %v", p.name, r))
			}
		}()

		val, err := fn(ctx)
		f.fulfil(val, err)
	}()

	return f
}
