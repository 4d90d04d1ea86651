package timelog

import (
	"time"

	"github.com/google/uuid"
)

// TimeLog records one finished countdown session.
type TimeLog struct {
	ID        int64
	SessionID string
	Title     string
	Mode      string
	Input     string
	Total     time.Duration
	Remaining time.Duration
	Outcome   string
	StartedAt time.Time
	StoppedAt time.Time
}

// NewTimeLog starts a record for a session beginning at startedAt.
func NewTimeLog(input, title, mode string, total time.Duration, startedAt time.Time) *TimeLog {
	return &TimeLog{
		SessionID: uuid.NewString(),
		Title:     title,
		Mode:      mode,
		Input:     input,
		Total:     total,
		Remaining: total,
		StartedAt: startedAt,
	}
}

// Finish stamps the outcome.
func (l *TimeLog) Finish(outcome string, remaining time.Duration, stoppedAt time.Time) {
	l.Outcome = outcome
	l.Remaining = remaining
	l.StoppedAt = stoppedAt
}

// Duration is the wall-clock length of the session, pauses included.
func (l *TimeLog) Duration() time.Duration {
	if l.StoppedAt.IsZero() {
		return 0
	}
	return l.StoppedAt.Sub(l.StartedAt)
}

// Counted is how much of the requested total was actually counted off.
func (l *TimeLog) Counted() time.Duration {
	return l.Total - l.Remaining
}
