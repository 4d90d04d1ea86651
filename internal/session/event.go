package session

import (
	"context"
	"time"
)

// Event is a logical input delivered to the control loop. It carries intent
// only; the loop alone mutates timer state.
type Event int

const (
	EventPauseToggle Event = iota + 1
	EventQuit
	EventResize
)

func (e Event) String() string {
	switch e {
	case EventPauseToggle:
		return "pause-toggle"
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Frame is one render request.
type Frame struct {
	Display time.Duration
	Title   string
	Paused  bool
}

// Renderer draws frames on the terminal surface.
type Renderer interface {
	Render(Frame) error
	Clear() error
}

// Announcer speaks or sounds the seconds left. Failures are ignored by the loop.
type Announcer interface {
	Announce(ctx context.Context, seconds int) error
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeExpired Outcome = iota + 1
	OutcomeInterrupted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExpired:
		return "expired"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
