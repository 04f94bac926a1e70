// Package actor is a small actor runtime core: actors own private state,
// receive type-erased messages through per-actor mailboxes and are run by a
// pluggable Scheduler.
//
// # Actors and Props
//
// An actor implements [Actor] for its message type M. [Props] is the
// immutable factory that builds it, so the same construction can be repeated
// to respawn an equivalent instance:
//
//	type adder struct{ delta int }
//
//	func (a *adder) Receive(ctx *actor.Context, n int) error {
//	    return ctx.Reply(n + a.delta)
//	}
//
//	props := actor.NewProps(func(delta int) actor.Actor[int] { return &adder{delta: delta} }, 1)
//	ref := actor.Spawn(sys, props)
//
// # Sending
//
// Everything that accepts messages implements [CanReceive]. Receive checks
// the concrete type and returns a [*TypeMismatchError] instead of enqueueing
// a message of the wrong type:
//
//	err := ref.Receive("x", nil) // errors.Is(err, actor.ErrTypeMismatch)
//	ref.Send(41, nil)           // statically typed, cannot mismatch
//
// # Ask
//
// [Ask] sends a message with a one-shot completion as sender and returns a
// future right away. The first reply of the expected type resolves it:
//
//	f, err := actor.Ask[int](ref, 41)
//	v, err := f.Await(ctx) // 42
//
// # Scheduling
//
// Sending never runs actor code. It appends to the mailbox and, if the actor
// is idle, issues one request to the [Scheduler]. A worker then calls
// [Ref.Handle], which processes one message and reschedules the actor if
// more work is pending. A trigger that finds the actor already running
// returns immediately, so workers never block on a busy actor and an actor
// never runs on two workers at once.
//
// [WorkerPool] is the default scheduler; [ManualScheduler] runs requests
// only when told to and is meant for tests.
package actor
