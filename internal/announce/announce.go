// Package announce makes the last seconds of a countdown audible. Every
// announcer is best effort: callers log failures and carry on.
package announce

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"countdown/internal/session"
)

// Default picks the platform's spoken voice when there is one and falls back
// to a speaker tone.
func Default() session.Announcer {
	if runtime.GOOS == "darwin" {
		if path, err := exec.LookPath("say"); err == nil {
			return NewSay(path)
		}
	}
	return NewTone()
}

// Say runs the macOS say command.
type Say struct {
	path string
}

func NewSay(path string) *Say {
	return &Say{path: path}
}

func (s *Say) Announce(ctx context.Context, seconds int) error {
	cmd := exec.CommandContext(ctx, s.path, strconv.Itoa(seconds))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("say failed: %w, output: %s", err, string(output))
	}
	return nil
}

// Noop announces nothing.
type Noop struct{}

func (Noop) Announce(context.Context, int) error {
	return nil
}
