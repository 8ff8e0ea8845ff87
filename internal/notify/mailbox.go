package notify

import "sync"

// mailbox is an unbounded FIFO with a non-blocking Post. A pump goroutine
// moves queued values onto out in order.
type mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	signal chan struct{}
	out    chan T
	done   chan struct{}
	once   sync.Once
}

func newMailbox[T any]() *mailbox[T] {
	m := &mailbox[T]{
		signal: make(chan struct{}, 1),
		out:    make(chan T),
		done:   make(chan struct{}),
	}
	go m.pump()
	return m
}

// Post enqueues v and returns immediately. Values posted after close are dropped.
func (m *mailbox[T]) Post(v T) {
	select {
	case <-m.done:
		return
	default:
	}

	m.mu.Lock()
	m.queue = append(m.queue, v)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *mailbox[T]) pump() {
	defer close(m.out)

	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			select {
			case <-m.signal:
				continue
			case <-m.done:
				return
			}
		}
		v := m.queue[0]
		var zero T
		m.queue[0] = zero
		m.queue = m.queue[1:]
		m.mu.Unlock()

		select {
		case m.out <- v:
		case <-m.done:
			return
		}
	}
}

// pending returns the number of values still queued.
func (m *mailbox[T]) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *mailbox[T]) close() {
	m.once.Do(func() {
		close(m.done)
	})
}
