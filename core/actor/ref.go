package actor

import "github.com/codewandler/cellactor/internal/reflector"

// Ref is a handle onto one actor. Refs are cheap to copy and clone; all
// clones address the same mailbox and actor instance.
type Ref[M any] struct {
	cell *cell[M]
}

// ID returns the id of the referenced actor.
func (r *Ref[M]) ID() string { return r.cell.id }

// Receive enqueues msg if it is an M. Otherwise it returns a
// *TypeMismatchError, records the message as a dead letter and leaves the
// actor untouched.
func (r *Ref[M]) Receive(msg any, sender CanReceive) error {
	m, ok := msg.(M)
	if !ok {
		err := &TypeMismatchError{
			Target: r.cell.id,
			Want:   msgTypeFor[M](),
			Got:    reflector.NameOf(msg),
		}
		r.cell.system.metrics.TypeMismatch(err.Got)
		r.cell.system.deadLetter(r.cell.id, msg, sender, err)
		return err
	}
	r.cell.enqueue(m, sender)
	return nil
}

// Send enqueues a statically typed message.
func (r *Ref[M]) Send(msg M, sender CanReceive) {
	r.cell.enqueue(msg, sender)
}

// TellTo sends msg to to with r as the sender.
func (r *Ref[M]) TellTo(to CanReceive, msg any) error {
	return to.Receive(msg, r)
}

// Handle processes at most one pending message.
func (r *Ref[M]) Handle() error { return r.cell.processOne() }

// Clone returns another handle onto the same actor.
func (r *Ref[M]) Clone() *Ref[M] { return &Ref[M]{cell: r.cell} }

// Equal reports whether other addresses the same actor.
func (r *Ref[M]) Equal(other CanReceive) bool {
	o, ok := other.(*Ref[M])
	return ok && o != nil && o.cell == r.cell
}

// Props returns the producer the actor was built with.
func (r *Ref[M]) Props() Producer[M] { return r.cell.producer }

// Status returns the current scheduling state.
func (r *Ref[M]) Status() Status { return r.cell.status() }

// Pending returns the number of queued messages.
func (r *Ref[M]) Pending() int { return r.cell.mailbox.len() }

func (r *Ref[M]) String() string { return r.cell.id }

var _ CanReceive = (*Ref[int])(nil)
