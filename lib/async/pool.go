// Package async provides bounded worker pool utilities.
package async

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coachpo/arena/arena"
	"github.com/coachpo/arena/errs"
)

// Task represents a unit of work executed by the pool workers.
type Task func(context.Context) error

// Pool defines a bounded worker pool enforcing backpressure when saturated.
// Job envelopes are leased from an internal arena so steady-state submission
// does not allocate.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan *arena.Lease[job]
	leases *arena.Arena[job]
	wg     sync.WaitGroup
	once   sync.Once
	closed atomic.Bool
}

type job struct {
	ctx context.Context
	fn  Task
}

func sanitizeJob(job) (job, bool) {
	return job{}, true
}

// NewPool creates a worker pool with the given concurrency and queue depth.
func NewPool(workers, queue int) (*Pool, error) {
	if workers <= 0 {
		return nil, errs.New("lib/async", errs.CodeInvalid, errs.WithMessage("workers must be >0"))
	}
	if queue < 0 {
		queue = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := new(Pool)
	p.ctx = ctx
	p.cancel = cancel
	p.jobs = make(chan *arena.Lease[job], queue)
	p.leases = arena.New(
		arena.Named[job]("async-jobs"),
		arena.Capacity[job](queue+workers),
		arena.Sanitizer(sanitizeJob),
	)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p, nil
}

// Submit schedules the provided task for execution respecting pool backpressure.
func (p *Pool) Submit(ctx context.Context, fn Task) error {
	if fn == nil {
		return errs.New("lib/async", errs.CodeInvalid, errs.WithMessage("task must not be nil"))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if p.closed.Load() {
		return errs.New("lib/async", errs.CodeUnavailable, errs.WithMessage("pool closed"))
	}
	lease := p.leases.GetZero()
	envelope := lease.Value()
	envelope.ctx = ctx
	envelope.fn = fn

	p.wg.Add(1)
	select {
	case <-p.ctx.Done():
		p.wg.Done()
		lease.Release()
		return errs.New("lib/async", errs.CodeUnavailable, errs.WithMessage("pool closed"))
	case <-ctx.Done():
		p.wg.Done()
		lease.Release()
		return fmt.Errorf("submit context: %w", ctx.Err())
	case p.jobs <- lease:
		return nil
	default:
		p.wg.Done()
		lease.Release()
		return errs.New("lib/async", errs.CodeUnavailable, errs.WithMessage("pool at capacity"))
	}
}

// Close stops accepting new tasks and cancels the pool context. Submit must
// not be called concurrently with Close.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.closed.Store(true)
		p.cancel()
		close(p.jobs)
	})
}

// Shutdown waits for in-flight tasks to complete or until the context expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.Close()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context: %w", ctx.Err())
	case <-done:
		return nil
	}
}

// worker drains the job channel until it is closed so every accepted task
// observes exactly one wg.Done, even during shutdown.
func (p *Pool) worker() {
	for lease := range p.jobs {
		envelope := lease.Value()
		ctx := envelope.ctx
		fn := envelope.fn
		lease.Release()
		if ctx == nil {
			ctx = p.ctx
		}
		p.run(ctx, fn)
		p.wg.Done()
	}
}

func (p *Pool) run(ctx context.Context, fn Task) {
	defer func() {
		// A panicking task must not take the worker down with it.
		_ = recover()
	}()
	// Task errors are the submitter's concern.
	_ = fn(ctx)
}
