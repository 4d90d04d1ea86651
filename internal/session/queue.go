package session

import "sync"

// Queue carries events from the input reader to the control loop. It is
// unbounded and ordered: Push never drops an event and never waits on the
// consumer.
type Queue struct {
	in   chan Event
	out  chan Event
	done chan struct{}
	once sync.Once
}

func NewQueue() *Queue {
	q := &Queue{
		in:   make(chan Event),
		out:  make(chan Event),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// Push enqueues e. After Close it is a no-op.
func (q *Queue) Push(e Event) {
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.in <- e:
	case <-q.done:
	}
}

// Events is the consumer side. It is closed after Close.
func (q *Queue) Events() <-chan Event {
	return q.out
}

// Close stops the queue and discards anything not yet delivered.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) run() {
	defer close(q.out)

	var pending []Event
	for {
		select {
		case <-q.done:
			return
		default:
		}

		var (
			out  chan Event
			next Event
		)
		if len(pending) > 0 {
			out = q.out
			next = pending[0]
		}

		select {
		case e := <-q.in:
			pending = append(pending, e)
		case out <- next:
			pending = pending[1:]
		case <-q.done:
			return
		}
	}
}
