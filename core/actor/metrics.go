package actor

// Timer measures one operation. ObserveDuration records the time elapsed
// since the timer was created.
type Timer interface {
	ObserveDuration()
}

// ActorMetrics is the instrumentation surface of the runtime.
// All methods are called concurrently and must be thread-safe.
type ActorMetrics interface {
	// Message handling
	MessageDuration(msgType string) Timer
	MessageProcessed(msgType string, success bool)
	MessagePanic(msgType string)

	// Dispatch boundary
	TypeMismatch(msgType string)
	DeadLetter(msgType string)

	// Mailbox and gate
	MailboxDepth(actorID string, depth int)
	ScheduleRequested(actorID string)

	// Worker pool
	SchedulerInflight(count int)
	SchedulerTaskDuration() Timer
	SchedulerTaskCompleted(success bool)
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a Timer that records nothing.
func NopTimer() Timer { return nopTimer{} }

type nopActorMetrics struct{}

func (nopActorMetrics) MessageDuration(string) Timer  { return nopTimer{} }
func (nopActorMetrics) MessageProcessed(string, bool) {}
func (nopActorMetrics) MessagePanic(string)           {}

func (nopActorMetrics) TypeMismatch(string) {}
func (nopActorMetrics) DeadLetter(string)   {}

func (nopActorMetrics) MailboxDepth(string, int)  {}
func (nopActorMetrics) ScheduleRequested(string) {}

func (nopActorMetrics) SchedulerInflight(int)         {}
func (nopActorMetrics) SchedulerTaskDuration() Timer  { return nopTimer{} }
func (nopActorMetrics) SchedulerTaskCompleted(bool)   {}

// NopActorMetrics returns a no-op ActorMetrics implementation.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }
