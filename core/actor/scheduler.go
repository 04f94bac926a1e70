package actor

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Scheduler runs actors. Schedule must eventually call r.Handle on some
// worker and must not block the caller. Implementations may coalesce
// repeated requests for the same Runnable.
type Scheduler interface {
	Schedule(r Runnable)
}

type WorkerPoolOptions struct {
	Context context.Context
	Logger  *slog.Logger
	Metrics ActorMetrics
	// MaxWorkers caps concurrently running Handle calls.
	// If 0 or negative, runtime.GOMAXPROCS(0) is used.
	MaxWorkers int
}

// WorkerPool is the default Scheduler. Every request runs on its own
// goroutine once one of MaxWorkers slots is free.
type WorkerPool struct {
	ctx      context.Context
	log      *slog.Logger
	metrics  ActorMetrics
	sem      *semaphore.Weighted
	inflight atomic.Int32
	wg       sync.WaitGroup
}

func NewWorkerPool(opt WorkerPoolOptions) *WorkerPool {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopActorMetrics()
	}
	if opt.MaxWorkers <= 0 {
		opt.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{
		ctx:     opt.Context,
		log:     opt.Logger,
		metrics: opt.Metrics,
		sem:     semaphore.NewWeighted(int64(opt.MaxWorkers)),
	}
}

func (p *WorkerPool) Schedule(r Runnable) {
	// Don't schedule if context is already cancelled
	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)

		p.metrics.SchedulerInflight(int(p.inflight.Add(1)))
		defer func() {
			p.metrics.SchedulerInflight(int(p.inflight.Add(-1)))
		}()

		p.run(r)
	}()
}

func (p *WorkerPool) run(r Runnable) {
	defer p.metrics.SchedulerTaskDuration().ObserveDuration()

	defer func() {
		if rec := recover(); rec != nil {
			p.metrics.SchedulerTaskCompleted(false)
			// log the panic but don't re-panic
			p.log.Error("scheduled task panicked", slog.Any("recovered", rec))
		}
	}()

	err := r.Handle()
	if err != nil {
		p.log.Debug("scheduled task failed", slog.Any("error", err))
	}
	p.metrics.SchedulerTaskCompleted(err == nil)
}

// Wait blocks until all accepted requests have run or were abandoned because
// the pool context was cancelled.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

var _ Scheduler = (*WorkerPool)(nil)
