package future

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadyCompleted is returned when a promise is resolved more than once.
var ErrAlreadyCompleted = errors.New("promise already completed")

type state[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// Promise is the write side of a one-shot value.
type Promise[T any] struct {
	s *state[T]
}

// Future is the read side of a one-shot value.
type Future[T any] struct {
	s *state[T]
}

// New creates a connected promise/future pair.
func New[T any]() (*Promise[T], *Future[T]) {
	s := &state[T]{done: make(chan struct{})}
	return &Promise[T]{s: s}, &Future[T]{s: s}
}

// Complete resolves the future with v.
func (p *Promise[T]) Complete(v T) error {
	return p.resolve(v, nil)
}

// Fail resolves the future with err. A nil err is a programming error and is
// rejected without resolving.
func (p *Promise[T]) Fail(err error) error {
	if err == nil {
		return errors.New("promise failed with nil error")
	}
	var z T
	return p.resolve(z, err)
}

func (p *Promise[T]) resolve(v T, err error) error {
	won := false
	p.s.once.Do(func() {
		won = true
		p.s.value = v
		p.s.err = err
		close(p.s.done)
	})
	if !won {
		return ErrAlreadyCompleted
	}
	return nil
}

// Done is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} { return f.s.done }

// Await blocks until the future is resolved or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.s.done:
		return f.s.value, f.s.err
	case <-ctx.Done():
		var z T
		return z, ctx.Err()
	}
}

// Peek returns the resolved value without blocking. ok is false while the
// future is still pending.
func (f *Future[T]) Peek() (v T, err error, ok bool) {
	select {
	case <-f.s.done:
		return f.s.value, f.s.err, true
	default:
		return v, nil, false
	}
}
