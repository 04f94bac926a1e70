package actor

import (
	"sync"
	"testing"
)

func newTestSystem(t *testing.T, sched Scheduler) *System {
	sys := NewSystem(Options{
		Context:   t.Context(),
		Scheduler: sched,
	})
	t.Cleanup(sys.Shutdown)
	return sys
}

type runnableFunc func() error

func (f runnableFunc) Handle() error { return f() }

// incrementer replies to every int with that int plus one.
type incrementer struct {
	seen []int
}

func (a *incrementer) Receive(ctx *Context, n int) error {
	a.seen = append(a.seen, n)
	return ctx.Reply(n + 1)
}

func incrementerProps() Props[struct{}, int] {
	return PropsFunc(func() Actor[int] { return &incrementer{} })
}

// recorder forwards every message it processes to out.
type recorder[M any] struct {
	out chan M
}

func (r *recorder[M]) Receive(_ *Context, msg M) error {
	r.out <- msg
	return nil
}

func recorderProps[M any](out chan M) Props[chan M, M] {
	return NewProps(func(out chan M) Actor[M] { return &recorder[M]{out: out} }, out)
}

type deadLetterCollector struct {
	mu  sync.Mutex
	dls []DeadLetter
}

func (c *deadLetterCollector) DeadLetter(dl DeadLetter) {
	c.mu.Lock()
	c.dls = append(c.dls, dl)
	c.mu.Unlock()
}

func (c *deadLetterCollector) all() []DeadLetter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DeadLetter(nil), c.dls...)
}
