package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushWithin(t *testing.T, q *Queue, e Event) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		q.Push(e)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Push blocked")
	}
}

func TestQueueKeepsOrderWithIdleConsumer(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	const n = 10000
	kinds := []Event{EventPauseToggle, EventResize, EventQuit}

	pushed := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			q.Push(kinds[i%len(kinds)])
		}
		close(pushed)
	}()
	select {
	case <-pushed:
	case <-time.After(waitFor):
		t.Fatal("Push blocked while nobody was reading")
	}

	for i := 0; i < n; i++ {
		select {
		case e := <-q.Events():
			require.Equal(t, kinds[i%len(kinds)], e, "event %d", i)
		case <-time.After(waitFor):
			t.Fatalf("event %d never delivered", i)
		}
	}

	select {
	case e := <-q.Events():
		t.Fatalf("unexpected extra event %v", e)
	default:
	}
}

func TestQueueCloseEndsEvents(t *testing.T) {
	q := NewQueue()
	pushWithin(t, q, EventQuit)
	q.Close()

	// Undelivered events may be discarded, but the channel must close.
	deadline := time.After(waitFor)
	for {
		select {
		case _, ok := <-q.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events not closed after Close")
		}
	}
}

func TestQueuePushAfterCloseIsNoop(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close()

	pushWithin(t, q, EventPauseToggle)

	select {
	case _, ok := <-q.Events():
		assert.False(t, ok, "closed queue delivered an event")
	case <-time.After(waitFor):
		t.Fatal("Events not closed after Close")
	}
}
