package actor

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type seqMsg struct {
	Producer int
	Seq      int
}

func TestCell_FIFOPerProducer(t *testing.T) {
	const (
		producers = 8
		perProd   = 500
	)
	sys := newTestSystem(t, nil)
	out := make(chan seqMsg, producers*perProd)
	ref := Spawn(sys, recorderProps(out))

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := range producers {
		go func() {
			defer wg.Done()
			for i := range perProd {
				require.NoError(t, ref.Receive(seqMsg{Producer: p, Seq: i}, nil))
			}
		}()
	}
	wg.Wait()

	next := make([]int, producers)
	for range producers * perProd {
		select {
		case m := <-out:
			require.Equal(t, next[m.Producer], m.Seq, "producer %d out of order", m.Producer)
			next[m.Producer]++
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for messages")
		}
	}
}

type exclusionProbe struct {
	active     *atomic.Int32
	violations *atomic.Int32
	processed  *atomic.Int32
}

func (p *exclusionProbe) Receive(_ *Context, _ int) error {
	if p.active.Add(1) > 1 {
		p.violations.Add(1)
	}
	runtime.Gosched()
	time.Sleep(10 * time.Microsecond)
	p.active.Add(-1)
	p.processed.Add(1)
	return nil
}

func TestCell_MutualExclusion(t *testing.T) {
	const (
		messages = 500
		triggers = 8
	)
	pool := NewWorkerPool(WorkerPoolOptions{Context: t.Context(), MaxWorkers: 16})
	sys := newTestSystem(t, pool)

	var active, violations, processed atomic.Int32
	ref := Spawn(sys, PropsFunc(func() Actor[int] {
		return &exclusionProbe{active: &active, violations: &violations, processed: &processed}
	}))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(triggers)
	for range triggers {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = ref.Handle()
				}
			}
		}()
	}

	for i := range messages {
		ref.Send(i, nil)
	}

	require.Eventually(t, func() bool {
		return processed.Load() == messages
	}, 5*time.Second, time.Millisecond)
	close(stop)
	wg.Wait()

	require.Zero(t, violations.Load())
	require.Equal(t, 0, ref.Pending())
}

func TestCell_IdleNoop(t *testing.T) {
	sched := NewManualScheduler()
	sys := newTestSystem(t, sched)
	out := make(chan int, 1)
	ref := Spawn(sys, recorderProps(out))

	require.NoError(t, ref.Handle())
	require.Nil(t, ref.cell.sender.get())
	require.Equal(t, StatusIdle, ref.Status())
	require.Zero(t, sched.Pending())
	require.Empty(t, out)

	// process one message from a known sender, then trigger again
	sender := sys.DeadLetters()
	ref.Send(1, sender)
	require.NoError(t, sched.RunAll())
	require.Equal(t, 1, <-out)
	require.Equal(t, sender, ref.cell.sender.get())

	require.NoError(t, ref.Handle())
	require.Equal(t, sender, ref.cell.sender.get())
	require.Equal(t, StatusIdle, ref.Status())
	require.Zero(t, sched.Pending())
	require.Empty(t, out)
}

func TestCell_CoalescesScheduleRequests(t *testing.T) {
	sched := NewManualScheduler()
	sys := newTestSystem(t, sched)
	out := make(chan int, 3)
	ref := Spawn(sys, recorderProps(out))

	ref.Send(1, nil)
	ref.Send(2, nil)
	ref.Send(3, nil)
	require.Equal(t, 1, sched.Pending())
	require.Equal(t, StatusScheduled, ref.Status())
	require.Equal(t, 3, ref.Pending())

	// one run handles one message and hands the rest back to the scheduler
	ran, err := sched.RunNext()
	require.True(t, ran)
	require.NoError(t, err)
	require.Equal(t, 1, <-out)
	require.Equal(t, 1, sched.Pending())
	require.Equal(t, StatusScheduled, ref.Status())

	require.NoError(t, sched.RunAll())
	require.Equal(t, 2, <-out)
	require.Equal(t, 3, <-out)
	require.Zero(t, sched.Pending())
	require.Equal(t, StatusIdle, ref.Status())
}

func TestCell_EnqueueWhileRunningDefersSchedule(t *testing.T) {
	sched := NewManualScheduler()
	sys := newTestSystem(t, sched)

	type observed struct {
		status  Status
		pending int
	}
	var seen []observed

	ref := Spawn(sys, PropsFunc(func() Actor[int] {
		return ReceiveFunc[int](func(ctx *Context, n int) error {
			if n == 0 {
				require.NoError(t, ctx.Tell(ctx.Self(), 1))
			}
			seen = append(seen, observed{
				status:  ctx.Self().(*Ref[int]).Status(),
				pending: sched.Pending(),
			})
			return nil
		})
	}))

	ref.Send(0, nil)
	ran, err := sched.RunNext()
	require.True(t, ran)
	require.NoError(t, err)

	// the self-send happened while running: no request until release
	require.Equal(t, []observed{{status: StatusRunning, pending: 0}}, seen)
	require.Equal(t, 1, sched.Pending())

	require.NoError(t, sched.RunAll())
	require.Len(t, seen, 2)
	require.Equal(t, StatusIdle, ref.Status())
}

func TestCell_SenderSlotMatchesEnvelope(t *testing.T) {
	sched := NewManualScheduler()
	sys := newTestSystem(t, sched)

	senders := make(chan CanReceive, 3)
	ref := Spawn(sys, PropsFunc(func() Actor[string] {
		return ReceiveFunc[string](func(ctx *Context, _ string) error {
			senders <- ctx.Sender()
			return nil
		})
	}))
	other := Spawn(sys, incrementerProps())

	ref.Send("a", other)
	ref.Send("b", nil)
	ref.Send("c", sys.DeadLetters())
	require.NoError(t, sched.RunAll())

	require.True(t, other.Equal(<-senders))
	require.Nil(t, <-senders)
	require.Equal(t, sys.DeadLetters(), <-senders)
}

func TestCell_PanicReleasesGate(t *testing.T) {
	sched := NewManualScheduler()
	var panics atomic.Int32
	sys := NewSystem(Options{
		Context:   t.Context(),
		Scheduler: sched,
		OnPanic: func(recovered any, stack []byte, msg any) {
			require.Equal(t, "boom", recovered)
			require.NotEmpty(t, stack)
			require.Equal(t, 0, msg)
			panics.Add(1)
		},
	})

	senders := make(chan CanReceive, 2)
	ref := Spawn(sys, PropsFunc(func() Actor[int] {
		return ReceiveFunc[int](func(ctx *Context, n int) error {
			senders <- ctx.Sender()
			if n == 0 {
				panic("boom")
			}
			return nil
		})
	}))

	first := Spawn(sys, incrementerProps())
	ref.Send(0, first)
	ref.Send(1, nil)

	ran, err := sched.RunNext()
	require.True(t, ran)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "boom", pe.Recovered)
	require.Equal(t, int32(1), panics.Load())
	require.True(t, first.Equal(<-senders))

	// gate released and the next message still flows
	require.Equal(t, StatusScheduled, ref.Status())
	require.NoError(t, sched.RunAll())
	require.Nil(t, <-senders)
	require.Equal(t, StatusIdle, ref.Status())
}

func TestCell_HandlerErrorIsReturned(t *testing.T) {
	sched := NewManualScheduler()
	sys := newTestSystem(t, sched)
	uups := errors.New("uups")

	ref := Spawn(sys, PropsFunc(func() Actor[int] {
		return ReceiveFunc[int](func(*Context, int) error { return uups })
	}))
	ref.Send(1, nil)

	require.ErrorIs(t, sched.RunAll(), uups)
	require.Equal(t, StatusIdle, ref.Status())
}
