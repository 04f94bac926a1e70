package actor

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Status is the scheduling state of an actor.
type Status int

const (
	StatusIdle Status = iota
	StatusScheduled
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusScheduled:
		return "scheduled"
	case StatusRunning:
		return "running"
	default:
		return "unknown"
	}
}

// gate bits. running and scheduled may both be set: new work arrived while
// a worker was processing, and that worker reschedules on release.
const (
	gateRunning uint32 = 1 << iota
	gateScheduled
)

type senderSlot struct {
	mu sync.RWMutex
	s  CanReceive
}

func (ss *senderSlot) get() CanReceive {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.s
}

func (ss *senderSlot) set(s CanReceive) {
	ss.mu.Lock()
	ss.s = s
	ss.mu.Unlock()
}

// cell owns one actor instance and serializes its message processing.
type cell[M any] struct {
	id       string
	system   *System
	log      *slog.Logger
	producer Producer[M]
	actor    Actor[M]
	self     *Ref[M]

	mailbox mailbox[M]
	sender  senderSlot
	gate    atomic.Uint32
}

func newCell[M any](s *System, id string, p Producer[M]) *cell[M] {
	c := &cell[M]{
		id:       id,
		system:   s,
		log:      s.log.With(slog.String("actor", id)),
		producer: p,
		actor:    p.Create(),
	}
	c.self = &Ref[M]{cell: c}
	return c
}

func (c *cell[M]) enqueue(msg M, sender CanReceive) {
	depth := c.mailbox.push(envelope[M]{message: msg, sender: sender})
	c.system.metrics.MailboxDepth(c.id, depth)
	c.requestSchedule()
}

// requestSchedule asks the scheduler to run the actor unless a request is
// already outstanding or a running worker will pick the work up on release.
func (c *cell[M]) requestSchedule() {
	for {
		old := c.gate.Load()
		if old&gateScheduled != 0 {
			return
		}
		if c.gate.CompareAndSwap(old, old|gateScheduled) {
			if old&gateRunning == 0 {
				c.schedule()
			}
			return
		}
	}
}

func (c *cell[M]) schedule() {
	c.system.metrics.ScheduleRequested(c.id)
	c.system.scheduler.Schedule(c.self)
}

// acquire enters the gate without blocking. It fails if another worker is
// processing; that worker re-checks the mailbox when it releases.
func (c *cell[M]) acquire() bool {
	for {
		old := c.gate.Load()
		if old&gateRunning != 0 {
			return false
		}
		if c.gate.CompareAndSwap(old, gateRunning) {
			return true
		}
	}
}

func (c *cell[M]) release() {
	for {
		old := c.gate.Load()
		if old&gateScheduled != 0 || c.mailbox.len() > 0 {
			if c.gate.CompareAndSwap(old, gateScheduled) {
				c.schedule()
				return
			}
			continue
		}
		if c.gate.CompareAndSwap(old, 0) {
			return
		}
	}
}

func (c *cell[M]) status() Status {
	g := c.gate.Load()
	switch {
	case g&gateRunning != 0:
		return StatusRunning
	case g&gateScheduled != 0:
		return StatusScheduled
	default:
		return StatusIdle
	}
}

// processOne handles at most one envelope. An empty mailbox is a no-op.
func (c *cell[M]) processOne() error {
	if !c.acquire() {
		return nil
	}
	defer c.release()

	env, ok := c.mailbox.pop()
	if !ok {
		return nil
	}
	c.system.metrics.MailboxDepth(c.id, c.mailbox.len())
	c.sender.set(env.sender)

	return c.invoke(env)
}

func (c *cell[M]) invoke(env envelope[M]) (err error) {
	mt := msgTypeOf(env.message)
	m := c.system.metrics

	defer m.MessageDuration(mt).ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			m.MessagePanic(mt)
			m.MessageProcessed(mt, false)
			c.system.onPanic(r, debug.Stack(), env.message)
			err = &PanicError{Recovered: r, MsgType: mt}
		}
	}()

	hc := &Context{
		Context: c.system.ctx,
		self:    c.self,
		sender:  &c.sender,
		system:  c.system,
		log:     c.log,
	}
	err = c.actor.Receive(hc, env.message)
	if err != nil {
		c.log.Debug("message handler failed", slog.String("msg_type", mt), slog.Any("error", err))
	}
	m.MessageProcessed(mt, err == nil)
	return err
}
