package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/internal/timelog"
)

type fakeSource struct {
	logs   []timelog.TimeLog
	counts map[string]int
	err    error
}

func (f fakeSource) GetRecentLogs(limit int) ([]timelog.TimeLog, error) {
	if len(f.logs) > limit {
		return f.logs[:limit], f.err
	}
	return f.logs, f.err
}

func (f fakeSource) CountByOutcome() (map[string]int, error) {
	return f.counts, nil
}

func TestPrintHistory(t *testing.T) {
	now := time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)
	src := fakeSource{
		logs: []timelog.TimeLog{
			{Input: "25m", Title: "focus", Mode: "down", Outcome: "expired",
				Total: 25 * time.Minute, Remaining: 0,
				StartedAt: now.Add(-2*time.Hour - 31*time.Minute), StoppedAt: now.Add(-2 * time.Hour)},
			{Input: "5m", Mode: "up", Outcome: "interrupted",
				Total: 5 * time.Minute, Remaining: 3 * time.Minute,
				StartedAt: now.Add(-3*24*time.Hour - 2*time.Minute), StoppedAt: now.Add(-3 * 24 * time.Hour)},
		},
		counts: map[string]int{"interrupted": 1, "expired": 1200},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, src, 10, now))
	out := buf.String()

	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "25m0s of 25m0s (ran 31m0s)  25m [focus]")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "2m0s of 5m0s (ran 2m0s)  5m")
	assert.Contains(t, out, "Total: 1,200 expired, 1 interrupted")
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, fakeSource{}, 10, time.Now()))
	assert.Equal(t, "No sessions recorded yet.\n", buf.String())
}

func TestPrintHistoryError(t *testing.T) {
	err := PrintHistory(&bytes.Buffer{}, fakeSource{err: errors.New("locked")}, 10, time.Now())
	assert.ErrorContains(t, err, "locked")
}
