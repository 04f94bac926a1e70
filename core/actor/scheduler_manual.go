package actor

import (
	"errors"
	"sync"
)

// ManualScheduler queues requests until the caller runs them. It makes
// scheduling deterministic in tests.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []Runnable
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) Schedule(r Runnable) {
	m.mu.Lock()
	m.queue = append(m.queue, r)
	m.mu.Unlock()
}

// Pending returns the number of queued requests.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// RunNext runs the oldest request. ran is false if the queue was empty.
func (m *ManualScheduler) RunNext() (ran bool, err error) {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return false, nil
	}
	r := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	m.mu.Unlock()

	return true, r.Handle()
}

// RunAll runs requests, including the ones scheduled while running, until
// the queue is empty. Handle errors are joined.
func (m *ManualScheduler) RunAll() error {
	var errs []error
	for {
		ran, err := m.RunNext()
		if !ran {
			return errors.Join(errs...)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
}

var _ Scheduler = (*ManualScheduler)(nil)
