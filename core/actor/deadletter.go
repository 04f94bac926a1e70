package actor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/codewandler/cellactor/internal/reflector"
)

type (
	// DeadLetter is a message that could not be delivered.
	DeadLetter struct {
		Target  string     // id of the intended receiver, empty if unknown
		Message any        // the undelivered message
		Sender  CanReceive // may be nil
		Reason  error      // nil if the message was sent to the dead letters directly
		At      time.Time
	}

	// DeadLetterSink records dead letters. DeadLetter must not block for long
	// since it runs on the sending goroutine.
	DeadLetterSink interface {
		DeadLetter(dl DeadLetter)
	}

	DeadLetterFunc func(dl DeadLetter)
)

func (f DeadLetterFunc) DeadLetter(dl DeadLetter) { f(dl) }

// MessageType returns the type name of the undelivered message.
func (d DeadLetter) MessageType() string { return msgTypeOf(d.Message) }

// SenderID returns the id of the sender if it has one.
func (d DeadLetter) SenderID() string {
	if d.Sender == nil {
		return ""
	}
	if s, ok := d.Sender.(fmt.Stringer); ok {
		return s.String()
	}
	return reflector.NameOf(d.Sender)
}

// LogDeadLetters returns a sink that logs every dead letter at warn level.
func LogDeadLetters(log *slog.Logger) DeadLetterSink {
	if log == nil {
		log = slog.Default()
	}
	return DeadLetterFunc(func(dl DeadLetter) {
		log.Warn("dead letter",
			slog.String("target", dl.Target),
			slog.String("msg_type", dl.MessageType()),
			slog.String("sender", dl.SenderID()),
			slog.Any("reason", dl.Reason),
		)
	})
}

// MultiDeadLetters fans every dead letter out to all sinks.
func MultiDeadLetters(sinks ...DeadLetterSink) DeadLetterSink {
	return DeadLetterFunc(func(dl DeadLetter) {
		for _, s := range sinks {
			s.DeadLetter(dl)
		}
	})
}

// deadLetters is the receiver behind System.DeadLetters.
type deadLetters struct {
	system *System
}

func (d *deadLetters) Receive(msg any, sender CanReceive) error {
	d.system.deadLetter("", msg, sender, nil)
	return nil
}

func (d *deadLetters) Handle() error {
	return fmt.Errorf("%w: handle called on dead letters", ErrInvalidOperation)
}

func (d *deadLetters) String() string { return "dead-letters" }
