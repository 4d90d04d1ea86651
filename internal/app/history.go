package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"countdown/internal/timelog"
)

// HistorySource lists recorded sessions.
type HistorySource interface {
	GetRecentLogs(limit int) ([]timelog.TimeLog, error)
	CountByOutcome() (map[string]int, error)
}

// PrintHistory writes the latest sessions, newest first, followed by totals.
func PrintHistory(w io.Writer, src HistorySource, limit int, now time.Time) error {
	logs, err := src.GetRecentLogs(limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(logs) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return nil
	}

	for _, l := range logs {
		fmt.Fprintln(w, formatLogEntry(l, now))
	}

	counts, err := src.CountByOutcome()
	if err != nil {
		return fmt.Errorf("count history: %w", err)
	}
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(counts[o])), o))
	}
	fmt.Fprintf(w, "\nTotal: %s\n", strings.Join(parts, ", "))
	return nil
}

func formatLogEntry(l timelog.TimeLog, now time.Time) string {
	when := humanize.RelTime(l.StoppedAt, now, "ago", "from now")
	label := l.Input
	if l.Title != "" {
		label = fmt.Sprintf("%s [%s]", l.Input, l.Title)
	}
	return fmt.Sprintf("%-14s %-12s %-5s %s of %s (ran %s)  %s",
		when, l.Outcome, l.Mode, formatSeconds(l.Counted()), formatSeconds(l.Total), formatSeconds(l.Duration()), label)
}

func formatSeconds(d time.Duration) string {
	return (d / time.Second * time.Second).String()
}
