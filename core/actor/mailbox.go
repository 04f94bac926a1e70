package actor

import "sync"

type envelope[M any] struct {
	message M
	sender  CanReceive
}

// mailbox is an unbounded multi-producer FIFO. Producers and the single
// logical consumer only hold mu for the push/pop itself.
type mailbox[M any] struct {
	mu    sync.Mutex
	items []envelope[M]
	head  int
}

func (m *mailbox[M]) push(e envelope[M]) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, e)
	return len(m.items) - m.head
}

func (m *mailbox[M]) pop() (e envelope[M], ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.head == len(m.items) {
		return e, false
	}
	e = m.items[m.head]
	m.items[m.head] = envelope[M]{}
	m.head++

	// reclaim the consumed prefix once it dominates the slice
	switch {
	case m.head == len(m.items):
		m.items = m.items[:0]
		m.head = 0
	case m.head >= 64 && m.head*2 >= len(m.items):
		n := copy(m.items, m.items[m.head:])
		clear(m.items[n:])
		m.items = m.items[:n]
		m.head = 0
	}
	return e, true
}

func (m *mailbox[M]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) - m.head
}
