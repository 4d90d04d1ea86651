package timeparse

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty            = errors.New("empty input")
	ErrMissingNumber    = errors.New("missing number before unit")
	ErrMissingUnit      = errors.New("number without unit")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrZeroDuration     = errors.New("zero duration")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrTooLarge         = errors.New("duration too large")
)

// Kind classifies a parse failure.
type Kind int

const (
	// KindInvalidFormat means the input matched neither the duration nor the clock grammar.
	KindInvalidFormat Kind = iota
	// KindInvalidDuration means the input looked like a duration but broke one of its rules.
	KindInvalidDuration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "invalid format"
	case KindInvalidDuration:
		return "invalid duration"
	default:
		return "unknown"
	}
}

// Error is returned by Parse. Err holds the specific reason and is one of the
// package sentinels when the relative-duration grammar produced it.
type Error struct {
	Kind  Kind
	Input string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Input, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// reasonError attaches detail (the offending unit or character) to a sentinel.
type reasonError struct {
	sentinel error
	detail   string
}

func (e *reasonError) Error() string {
	return fmt.Sprintf("%v '%s'", e.sentinel, e.detail)
}

func (e *reasonError) Unwrap() error {
	return e.sentinel
}

func reason(sentinel error, detail string) error {
	return &reasonError{sentinel: sentinel, detail: detail}
}
