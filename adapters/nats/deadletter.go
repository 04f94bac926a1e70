package nats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	natsgo "github.com/nats-io/nats.go"

	"github.com/codewandler/cellactor/core/actor"
)

type DeadLetterConfig struct {
	Connect Connector    // If nil, ConnectDefault() is used.
	Log     *slog.Logger // optional
	// Subject receives one record per dead letter. Defaults to
	// "cellactor.deadletters".
	Subject string
}

// Record is the JSON document published for a dead letter. The message
// itself is not serialized, only described.
type Record struct {
	Target      string    `json:"target,omitempty"`
	Sender      string    `json:"sender,omitempty"`
	MessageType string    `json:"message_type"`
	Message     string    `json:"message"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

// DeadLetterSink is an actor.DeadLetterSink publishing Records to NATS.
type DeadLetterSink struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	log     *slog.Logger
	subject string
	closed  atomic.Bool
}

func NewDeadLetterSink(cfg DeadLetterConfig) (*DeadLetterSink, error) {
	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	subject := cfg.Subject
	if subject == "" {
		subject = "cellactor.deadletters"
	}

	nc, closeNc, err := connFn()
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &DeadLetterSink{
		nc:      nc,
		closeNc: closeNc,
		log:     log.With(slog.String("sink", "nats"), slog.String("subject", subject)),
		subject: subject,
	}, nil
}

// NewRecord describes dl for publishing.
func NewRecord(dl actor.DeadLetter) Record {
	r := Record{
		Target:      dl.Target,
		Sender:      dl.SenderID(),
		MessageType: dl.MessageType(),
		Message:     fmt.Sprintf("%+v", dl.Message),
		At:          dl.At.UTC(),
	}
	if dl.Reason != nil {
		r.Reason = dl.Reason.Error()
	}
	return r
}

// DeadLetter publishes dl. Publish is asynchronous in the NATS client, so
// this does not wait for the server. Failures are logged and dropped.
func (s *DeadLetterSink) DeadLetter(dl actor.DeadLetter) {
	if s.closed.Load() {
		return
	}
	data, err := json.Marshal(NewRecord(dl))
	if err != nil {
		s.log.Error("failed to encode dead letter", slog.Any("error", err))
		return
	}
	if err := s.nc.Publish(s.subject, data); err != nil {
		s.log.Warn("failed to publish dead letter", slog.Any("error", err))
	}
}

// Close flushes pending records and releases the connection.
func (s *DeadLetterSink) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.nc.Flush()
	s.closeNc()
	return err
}

var _ actor.DeadLetterSink = (*DeadLetterSink)(nil)
