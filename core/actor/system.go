package actor

import (
	"context"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type (
	OnPanic func(recovered any, stack []byte, msg any)

	Options struct {
		Context context.Context
		Logger  *slog.Logger
		// Scheduler runs actors. Defaults to a WorkerPool bound to Context.
		Scheduler   Scheduler
		Metrics     ActorMetrics
		OnPanic     OnPanic
		DeadLetters DeadLetterSink
	}

	// Spawner is implemented by *System and *Context.
	Spawner interface {
		spawnSystem() *System
	}
)

// System holds what all actors of one runtime share: scheduler, logger,
// metrics, panic hook and dead letter sink.
type System struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	scheduler   Scheduler
	metrics     ActorMetrics
	onPanic     OnPanic
	deadLetters DeadLetterSink
	dlRef       *deadLetters
}

func NewSystem(opt Options) *System {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopActorMetrics()
	}
	if opt.OnPanic == nil {
		log := opt.Logger
		opt.OnPanic = func(recovered any, stack []byte, msg any) {
			log.Error("actor panicked", slog.Any("recovered", recovered), slog.String("stack", string(stack)), slog.String("msg_type", msgTypeOf(msg)))
		}
	}
	if opt.DeadLetters == nil {
		opt.DeadLetters = LogDeadLetters(opt.Logger)
	}

	ctx, cancel := context.WithCancel(opt.Context)

	if opt.Scheduler == nil {
		opt.Scheduler = NewWorkerPool(WorkerPoolOptions{
			Context: ctx,
			Logger:  opt.Logger,
			Metrics: opt.Metrics,
		})
	}

	s := &System{
		ctx:         ctx,
		cancel:      cancel,
		log:         opt.Logger,
		scheduler:   opt.Scheduler,
		metrics:     opt.Metrics,
		onPanic:     opt.OnPanic,
		deadLetters: opt.DeadLetters,
	}
	s.dlRef = &deadLetters{system: s}
	return s
}

// Spawn creates an actor from props and returns its ref.
func Spawn[Args any, M any](sp Spawner, props Props[Args, M]) *Ref[M] {
	return SpawnProducer[M](sp, props)
}

// SpawnProducer creates an actor from any Producer.
func SpawnProducer[M any](sp Spawner, p Producer[M]) *Ref[M] {
	s := sp.spawnSystem()
	id := "actor-" + gonanoid.Must(10)
	c := newCell(s, id, p)
	s.log.Debug("spawned actor", slog.String("actor", id), slog.String("msg_type", msgTypeFor[M]()))
	return &Ref[M]{cell: c}
}

func (s *System) Context() context.Context { return s.ctx }
func (s *System) Log() *slog.Logger         { return s.log }
func (s *System) Scheduler() Scheduler      { return s.scheduler }

// DeadLetters returns a receiver that records every message as a dead letter.
func (s *System) DeadLetters() CanReceive { return s.dlRef }

// Shutdown cancels the system context and, if the scheduler supports it,
// waits for in-flight work. Messages sent afterwards are never processed.
func (s *System) Shutdown() {
	s.cancel()
	if w, ok := s.scheduler.(interface{ Wait() }); ok {
		w.Wait()
	}
	s.log.Debug("actor system stopped")
}

func (s *System) spawnSystem() *System { return s }

func (s *System) deadLetter(target string, msg any, sender CanReceive, reason error) {
	s.metrics.DeadLetter(msgTypeOf(msg))
	s.deadLetters.DeadLetter(DeadLetter{
		Target:  target,
		Message: msg,
		Sender:  sender,
		Reason:  reason,
		At:      time.Now(),
	})
}
