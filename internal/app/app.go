// Package app wires a countdown session together: the terminal program, the
// control loop, announcements and the history log.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"countdown/internal"
	"countdown/internal/clock"
	"countdown/internal/config"
	"countdown/internal/font"
	"countdown/internal/session"
	"countdown/internal/timelog"
	"countdown/internal/timer"
)

var (
	// ErrInterrupted is returned when the user quits before expiry.
	ErrInterrupted = errors.New("interrupted")
	// ErrNotTerminal is returned when stdout cannot host the display.
	ErrNotTerminal = errors.New("stdout is not a terminal")
)

// Session is one validated countdown request.
type Session struct {
	Input string
	Total time.Duration
	Mode  timer.Mode
	Title string
	Say   bool
}

// HistoryStore records finished sessions.
type HistoryStore interface {
	CreateLog(*timelog.TimeLog) error
}

// Runner runs sessions against the real terminal.
type Runner struct {
	Config    config.Config
	Log       zerolog.Logger
	Clock     clock.Clock
	Announcer session.Announcer
	History   HistoryStore

	// ProgramOptions are appended to the defaults (alt screen, no signal
	// handler). Tests use them to swap the terminal for buffers.
	ProgramOptions []tea.ProgramOption
	// SkipTTYCheck allows running without a terminal on stdout.
	SkipTTYCheck bool
}

// Run shows the countdown until it expires or the user quits. The terminal
// is restored before Run returns on every path.
func (r *Runner) Run(ctx context.Context, s Session) (session.Result, error) {
	if !r.SkipTTYCheck && !isTerminal(os.Stdout.Fd()) {
		return session.Result{}, ErrNotTerminal
	}
	clk := r.Clock
	if clk == nil {
		clk = clock.Real()
	}

	queue := session.NewQueue()
	defer queue.Close()

	model := internal.NewModel(font.Default(), r.Config.Keys, r.Config.Theme, queue)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, r.ProgramOptions...)
	p := tea.NewProgram(model, opts...)

	exited := make(chan struct{})
	loop := session.New(clk, internal.NewRenderer(p, exited), r.Announcer, session.Options{
		Mode:  s.Mode,
		Title: s.Title,
		Say:   s.Say,
	}, r.Log)

	record := timelog.NewTimeLog(s.Input, s.Title, s.Mode.String(), s.Total, time.Now())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(exited)
		defer cancel()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		return nil
	})

	var res session.Result
	g.Go(func() error {
		defer p.Quit()
		var err error
		res, err = loop.Run(gctx, s.Total, queue.Events())
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && res.Outcome != session.OutcomeFailed {
		res.Outcome = session.OutcomeFailed
	}
	r.record(record, res)

	if err != nil {
		return res, err
	}
	if res.Outcome == session.OutcomeInterrupted {
		return res, ErrInterrupted
	}
	return res, nil
}

func (r *Runner) record(l *timelog.TimeLog, res session.Result) {
	if r.History == nil {
		return
	}
	remaining := res.Final.Remaining
	if res.Outcome == session.OutcomeExpired {
		// the deadline may beat the last display tick
		remaining = 0
	}
	l.Finish(res.Outcome.String(), remaining, time.Now())
	if err := r.History.CreateLog(l); err != nil {
		r.Log.Warn().Err(err).Str("session", l.SessionID).Msg("Failed to record session")
		return
	}
	r.Log.Debug().Str("session", l.SessionID).Str("outcome", l.Outcome).Msg("Session recorded")
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
