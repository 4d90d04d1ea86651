package timer

import "time"

// Mode selects which way the display runs.
type Mode int

const (
	CountDown Mode = iota
	CountUp
)

func (m Mode) String() string {
	switch m {
	case CountDown:
		return "down"
	case CountUp:
		return "up"
	default:
		return "unknown"
	}
}

// Timer is the state of one countdown session. It is not safe for
// concurrent use; the control loop owns it.
type Timer struct {
	total     time.Duration
	remaining time.Duration
	mode      Mode
	paused    bool
}

func New(total time.Duration, mode Mode) *Timer {
	if total < 0 {
		total = 0
	}
	return &Timer{
		total:     total,
		remaining: total,
		mode:      mode,
	}
}

// Tick takes one second off the remaining time unless paused.
func (t *Timer) Tick() {
	if t.paused {
		return
	}
	if t.remaining > time.Second {
		t.remaining -= time.Second
	} else {
		t.remaining = 0
	}
}

func (t *Timer) Pause() {
	t.paused = true
}

func (t *Timer) Resume() {
	t.paused = false
}

func (t *Timer) Paused() bool {
	return t.paused
}

func (t *Timer) Total() time.Duration {
	return t.total
}

func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

func (t *Timer) Mode() Mode {
	return t.mode
}

// Display returns the value shown to the user: time left when counting down,
// time spent when counting up.
func (t *Timer) Display() time.Duration {
	if t.mode == CountUp {
		return t.total - t.remaining
	}
	return t.remaining
}

// Snapshot is a copy of the timer's state.
type Snapshot struct {
	Total     time.Duration
	Remaining time.Duration
	Display   time.Duration
	Mode      Mode
	Paused    bool
}

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Total:     t.total,
		Remaining: t.remaining,
		Display:   t.Display(),
		Mode:      t.mode,
		Paused:    t.paused,
	}
}
