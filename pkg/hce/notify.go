package hce

import (
	"sync"
	"sync/atomic"
)

// Notification is a command forwarded to the host application.
// Header is the first AID length + 5 bytes of the command, Data is the rest.
type Notification struct {
	Port   Port   `cbor:"1,keyasint"`
	Header []byte `cbor:"2,keyasint"`
	Data   []byte `cbor:"3,keyasint,omitempty"`
}

// Notifier receives forwarded commands. Notify is called from Process and
// must not block; it receives no reply.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

// DefaultQueueSize is the capacity used by NewQueue when size is not positive.
const DefaultQueueSize = 32

// Queue is a bounded Notifier that hands notifications to a separate consumer
// over a channel. Notify never blocks: when the queue is full or closed the
// notification is dropped and counted.
type Queue struct {
	mu      sync.RWMutex
	ch      chan Notification
	closed  bool
	dropped atomic.Uint64
}

// NewQueue returns a queue holding up to size pending notifications.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Notification, size)}
}

// Notify enqueues n, or drops it when the queue is full or closed.
func (q *Queue) Notify(n Notification) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.dropped.Add(1)
		return
	}

	select {
	case q.ch <- n:
	default:
		q.dropped.Add(1)
	}
}

// C returns the channel the consumer drains. It is closed by Close.
func (q *Queue) C() <-chan Notification { return q.ch }

// Dropped returns how many notifications were discarded.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }

// Close stops accepting notifications and closes C once. Pending
// notifications stay readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

var _ Notifier = (*Queue)(nil)
