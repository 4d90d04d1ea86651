// Package timeparse turns user text into a countdown length. It accepts a
// relative duration ("25s", "1h2m3s", "1m 30s") or a wall-clock time of day
// ("14:15", "1415", "02:30PM", "9:05 am").
package timeparse

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Formats lists example inputs for usage and error messages.
var Formats = []string{
	"Duration: 25s, 1m30s, 1h2m3s",
	"Time: 14:15, 02:30PM, 10:00AM",
}

// ParseNow parses input relative to the local wall clock.
func ParseNow(input string) (time.Duration, error) {
	return Parse(input, time.Now())
}

// Parse returns the duration described by input. Clock times resolve against
// now and always land in the future, or exactly now plus a day when the time
// of day has already been reached.
func Parse(input string, now time.Time) (time.Duration, error) {
	d, durErr := parseDuration(input)
	if durErr == nil {
		return d, nil
	}

	if d, err := parseClock(input, now); err == nil {
		return d, nil
	}

	if onlyDurationChars(input) {
		return 0, &Error{Kind: KindInvalidDuration, Input: input, Err: durErr}
	}
	return 0, &Error{Kind: KindInvalidFormat, Input: input, Err: durErr}
}

func parseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrEmpty
	}

	var (
		total  int64
		digits strings.Builder
	)
	for _, ch := range input {
		switch {
		case ch >= '0' && ch <= '9':
			digits.WriteRune(ch)
		case ch == ' ':
			if digits.Len() > 0 {
				// a space may separate tokens, never split one
				return 0, ErrMissingUnit
			}
		default:
			unit, ok := unitSeconds(ch)
			if !ok {
				return 0, reason(ErrInvalidCharacter, string(ch))
			}
			if digits.Len() == 0 {
				return 0, reason(ErrMissingNumber, string(ch))
			}
			n, err := strconv.ParseInt(digits.String(), 10, 64)
			if err != nil {
				return 0, reason(ErrInvalidNumber, digits.String())
			}
			digits.Reset()
			if n > (maxSeconds-total)/unit {
				return 0, ErrTooLarge
			}
			total += n * unit
		}
	}

	if digits.Len() > 0 {
		return 0, ErrMissingUnit
	}
	if total == 0 {
		return 0, ErrZeroDuration
	}
	return time.Duration(total) * time.Second, nil
}

const maxSeconds = math.MaxInt64 / int64(time.Second)

func unitSeconds(ch rune) (int64, bool) {
	switch ch {
	case 'h', 'H':
		return 3600, true
	case 'm', 'M':
		return 60, true
	case 's', 'S':
		return 1, true
	}
	return 0, false
}

func onlyDurationChars(input string) bool {
	for _, ch := range input {
		if ch >= '0' && ch <= '9' || ch == ' ' {
			continue
		}
		if _, ok := unitSeconds(ch); !ok {
			return false
		}
	}
	return true
}

var (
	layouts24 = []string{"15:04", "1504"}
	layouts12 = []string{"3:04 PM"}

	errNotClock = errors.New("not a clock time")
)

func parseClock(input string, now time.Time) (time.Duration, error) {
	input = strings.ToUpper(strings.TrimSpace(input))

	var target time.Time
	var err error
	switch {
	case strings.HasSuffix(input, "AM"), strings.HasSuffix(input, "PM"):
		suffix := input[len(input)-2:]
		clock := strings.TrimSpace(input[:len(input)-2])
		target, err = parseLayouts(clock+" "+suffix, layouts12)
	default:
		target, err = parseLayouts(input, layouts24)
	}
	if err != nil {
		return 0, err
	}

	targetSec := target.Hour()*3600 + target.Minute()*60
	nowSec := now.Hour()*3600 + now.Minute()*60 + now.Second()

	d := time.Duration(targetSec-nowSec) * time.Second
	if targetSec <= nowSec {
		d += day
	}
	return d, nil
}

func parseLayouts(value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errNotClock
}
