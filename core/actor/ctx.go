package actor

import (
	"context"
	"log/slog"
)

// Context is handed to Actor.Receive. It is only valid for the duration of
// that call.
type Context struct {
	context.Context
	self   CanReceive
	sender *senderSlot
	system *System
	log    *slog.Logger
}

// Self returns the ref of the running actor.
func (c *Context) Self() CanReceive { return c.self }

// Sender returns the sender of the message being processed, or nil.
func (c *Context) Sender() CanReceive { return c.sender.get() }

// Tell sends msg to to with the running actor as sender.
func (c *Context) Tell(to CanReceive, msg any) error {
	return to.Receive(msg, c.self)
}

// Reply sends msg to the sender of the current message. Without a sender the
// reply becomes a dead letter and ErrNoSender is returned.
func (c *Context) Reply(msg any) error {
	s := c.Sender()
	if s == nil {
		c.system.deadLetter("", msg, c.self, ErrNoSender)
		return ErrNoSender
	}
	return s.Receive(msg, c.self)
}

// Forward sends msg to to on behalf of the current sender.
func (c *Context) Forward(to CanReceive, msg any) error {
	return to.Receive(msg, c.Sender())
}

func (c *Context) Log() *slog.Logger { return c.log }

func (c *Context) System() *System { return c.system }

func (c *Context) spawnSystem() *System { return c.system }
