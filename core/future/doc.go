// Package future provides a one-shot promise/future pair.
//
// A [Promise] is the write side and a [Future] the read side of a single
// value. The first successful [Promise.Complete] or [Promise.Fail] resolves
// the future; every later attempt returns [ErrAlreadyCompleted] and leaves
// the resolved value untouched.
//
//	p, f := future.New[int]()
//	go func() { _ = p.Complete(42) }()
//	v, err := f.Await(ctx)
//
// The package never times out on its own. Callers bound the wait through the
// context passed to [Future.Await].
package future
