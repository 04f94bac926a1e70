package actor

type (
	// Runnable is what a Scheduler runs: Handle processes pending work.
	Runnable interface {
		Handle() error
	}

	// CanReceive is the type-erased entry point of everything that accepts
	// messages: actor refs, ask completions and dead letters.
	CanReceive interface {
		Runnable
		// Receive accepts msg from sender. A receiver that expects another
		// concrete type returns a *TypeMismatchError and keeps its state.
		// sender may be nil.
		Receive(msg any, sender CanReceive) error
	}

	// Actor is user state plus behavior for messages of type M. Receive is
	// never called concurrently for the same instance.
	Actor[M any] interface {
		Receive(ctx *Context, msg M) error
	}

	// ReceiveFunc adapts a function to Actor.
	ReceiveFunc[M any] func(ctx *Context, msg M) error
)

func (f ReceiveFunc[M]) Receive(ctx *Context, msg M) error { return f(ctx, msg) }

// Tell delivers msg to to without a sender.
func Tell(to CanReceive, msg any) error {
	return to.Receive(msg, nil)
}
