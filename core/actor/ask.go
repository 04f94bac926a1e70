package actor

import (
	"fmt"

	"github.com/codewandler/cellactor/core/future"
	"github.com/codewandler/cellactor/internal/reflector"
)

// completion is the sender handed to the target of an Ask. It resolves the
// future with the first reply of type R.
type completion[R any] struct {
	promise *future.Promise[R]
}

func (c *completion[R]) Receive(msg any, _ CanReceive) error {
	v, ok := msg.(R)
	if !ok {
		return &TypeMismatchError{
			Target: "ask",
			Want:   reflector.NameFor[R](),
			Got:    reflector.NameOf(msg),
		}
	}
	if err := c.promise.Complete(v); err != nil {
		return fmt.Errorf("ask reply: %w", err)
	}
	return nil
}

// Handle always fails: a completion has no mailbox to drain.
func (c *completion[R]) Handle() error {
	return fmt.Errorf("%w: handle called on ask completion", ErrInvalidOperation)
}

// Ask sends msg to to with a one-shot completion as sender and returns the
// future of the reply without waiting for it. The first reply of type R
// resolves the future; later replies are rejected with ErrAlreadyCompleted.
// If to rejects msg, the error is returned and no future is created.
//
// Ask never times out. Bound the wait with the context given to Await.
func Ask[R any](to CanReceive, msg any) (*future.Future[R], error) {
	p, f := future.New[R]()
	if err := to.Receive(msg, &completion[R]{promise: p}); err != nil {
		return nil, err
	}
	return f, nil
}
