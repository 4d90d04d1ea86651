// Package logging builds the zerolog logger. The countdown screen owns the
// terminal, so while it runs logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LevelForVerbosity maps a -v count onto a level: 0 keeps the configured
// level, 1 info, 2 debug, 3 or more trace.
func LevelForVerbosity(count int, configured zerolog.Level) zerolog.Level {
	switch {
	case count <= 0:
		return configured
	case count == 1:
		return zerolog.InfoLevel
	case count == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ParseLevel accepts zerolog level names plus "warning".
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.WarnLevel, fmt.Errorf("unknown level %s", s)
	}
	return lvl, nil
}

// Options configure New.
type Options struct {
	Level     string
	Verbosity int
	// File receives logs when set. Otherwise Console decides.
	File string
	// Console sends logs to stderr when File is empty. Leave it false while
	// the full-screen display is up.
	Console bool
}

// New returns a logger and a closer for any file it opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	lvl = LevelForVerbosity(opts.Verbosity, lvl)

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	case opts.Console:
		out = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	default:
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
