package actor

import (
	"errors"
	"fmt"

	"github.com/codewandler/cellactor/core/future"
)

var (
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("message type mismatch")
	// ErrInvalidOperation is returned by Handle on receivers that have no mailbox.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrAlreadyCompleted is returned when an ask receives a second reply.
	ErrAlreadyCompleted = future.ErrAlreadyCompleted
	// ErrNoSender is returned by Context.Reply when the current message has no sender.
	ErrNoSender = errors.New("message has no sender")
)

// TypeMismatchError reports a message delivered to a receiver expecting a
// different concrete type. The receiver is left untouched.
type TypeMismatchError struct {
	Target string // receiver id
	Want   string // expected type name
	Got    string // dynamic type name of the rejected message
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: target=%s want=%s got=%s", ErrTypeMismatch, e.Target, e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// PanicError wraps a value recovered from a panicking message handler.
type PanicError struct {
	Recovered any
	MsgType   string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("actor handler panicked: msg_type=%s recovered=%v", e.MsgType, e.Recovered)
}
