// Package diag implements the --test self check: it exercises the parser,
// the timer state and the glyph face and prints what it saw.
package diag

import (
	"errors"
	"fmt"
	"io"
	"time"

	"countdown/internal/font"
	"countdown/internal/timeparse"
	"countdown/internal/timer"
)

// ErrFailed is returned when any check did not hold.
var ErrFailed = errors.New("self test failed")

type checker struct {
	w      io.Writer
	failed int
}

func (c *checker) pass(format string, args ...any) {
	fmt.Fprintf(c.w, "✓ "+format+"\n", args...)
}

func (c *checker) fail(format string, args ...any) {
	c.failed++
	fmt.Fprintf(c.w, "✗ "+format+"\n", args...)
}

// Run writes the report to w. Clock-time samples resolve against now.
func Run(w io.Writer, now time.Time) error {
	c := &checker{w: w}
	c.durations(now)
	c.clockTimes(now)
	c.rejects(now)
	c.timerLogic()
	c.glyphs(font.Default())

	if c.failed > 0 {
		return fmt.Errorf("%w: %d check(s)", ErrFailed, c.failed)
	}
	return nil
}

func (c *checker) durations(now time.Time) {
	fmt.Fprintln(c.w, "Testing duration parsing...")
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"5s", 5 * time.Second},
		{"1m30s", 90 * time.Second},
		{"1h2m3s", 3723 * time.Second},
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"1h", time.Hour},
	}
	for _, tc := range cases {
		got, err := timeparse.Parse(tc.input, now)
		switch {
		case err != nil:
			c.fail("%s -> error: %v", tc.input, err)
		case got != tc.want:
			c.fail("%s -> %v (expected %v)", tc.input, got, tc.want)
		default:
			c.pass("%s -> %v", tc.input, got)
		}
	}
}

func (c *checker) clockTimes(now time.Time) {
	fmt.Fprintln(c.w, "\nTesting time format parsing...")
	for _, input := range []string{"14:15", "02:30PM", "10:00AM"} {
		got, err := timeparse.Parse(input, now)
		switch {
		case err != nil:
			c.fail("%s -> error: %v", input, err)
		case got <= 0 || got > 24*time.Hour:
			c.fail("%s -> %v (outside (0, 24h])", input, got)
		default:
			c.pass("%s -> %v", input, got)
		}
	}
}

func (c *checker) rejects(now time.Time) {
	fmt.Fprintln(c.w, "\nTesting error cases...")
	for _, input := range []string{"invalid", "5", "s", "", "0s"} {
		got, err := timeparse.Parse(input, now)
		if err == nil {
			c.fail("%q -> %v (should have been an error)", input, got)
			continue
		}
		c.pass("%q -> %v", input, err)
	}
}

func (c *checker) timerLogic() {
	fmt.Fprintln(c.w, "\nTesting timer logic...")

	down := timer.New(5*time.Second, timer.CountDown)
	down.Tick()
	if down.Display() == 4*time.Second {
		c.pass("count-down after 1 tick: %v", down.Display())
	} else {
		c.fail("count-down after 1 tick: %v (expected 4s)", down.Display())
	}

	down.Pause()
	down.Tick()
	if down.Paused() && down.Remaining() == 4*time.Second {
		c.pass("tick while paused keeps %v", down.Remaining())
	} else {
		c.fail("tick while paused changed remaining to %v", down.Remaining())
	}
	down.Resume()
	if !down.Paused() {
		c.pass("resume clears pause")
	} else {
		c.fail("resume left the timer paused")
	}

	up := timer.New(10*time.Second, timer.CountUp)
	up.Tick()
	if up.Display() == time.Second {
		c.pass("count-up after 1 tick: %v", up.Display())
	} else {
		c.fail("count-up after 1 tick: %v (expected 1s)", up.Display())
	}
}

func (c *checker) glyphs(face *font.Face) {
	fmt.Fprintln(c.w, "\nTesting font system...")
	for _, r := range face.Runes() {
		g, ok := face.Glyph(r)
		if !ok || len(g) != face.Height() {
			c.fail("glyph %q missing or wrong height", r)
		}
	}
	for _, r := range []rune{'0', ':'} {
		g, _ := face.Glyph(r)
		fmt.Fprintf(c.w, "Character %q:\n", r)
		for _, row := range g {
			fmt.Fprintf(c.w, "  %s\n", row)
		}
	}
	c.pass("%d glyphs, %d rows high", len(face.Runes()), face.Height())
}
