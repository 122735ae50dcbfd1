// Package queue provides the FIFO of pending control events.
package queue

import "github.com/frudas24/deskcontrol/internal/event"

// minCap is the initial ring capacity.
const minCap = 16

// Queue is an unbounded FIFO of control events. It never drops and never
// reorders. It is not safe for concurrent use; callers guard it.
type Queue struct {
	buf       []event.Event
	head      int
	n         int
	destroyed bool
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{buf: make([]event.Event, minCap)}
}

// Push appends ev to the tail. It returns false only when the queue has been destroyed.
func (q *Queue) Push(ev event.Event) bool {
	if q.destroyed {
		return false
	}
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = ev
	q.n++
	return true
}

// Take removes and returns the head. ok is false when the queue is empty.
func (q *Queue) Take() (ev event.Event, ok bool) {
	if q.n == 0 {
		return nil, false
	}
	ev = q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return ev, true
}

// IsEmpty reports whether no event is pending.
func (q *Queue) IsEmpty() bool {
	return q.n == 0
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return q.n
}

// Destroy releases every pending event and the storage, returning how many
// events were discarded. Later calls are no-ops returning zero.
func (q *Queue) Destroy() int {
	if q.destroyed {
		return 0
	}
	dropped := q.n
	q.buf = nil
	q.head = 0
	q.n = 0
	q.destroyed = true
	return dropped
}

// grow doubles the ring, unrolling it so head sits at index zero.
func (q *Queue) grow() {
	next := make([]event.Event, 2*len(q.buf))
	k := copy(next, q.buf[q.head:])
	copy(next[k:], q.buf[:q.head])
	q.buf = next
	q.head = 0
}
