// Package session runs one countdown: it multiplexes the one-second display
// tick, the expiry deadline and user input into timer state changes and
// render requests.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"countdown/internal/clock"
	"countdown/internal/timer"
)

// announceFrom is the number of seconds left at which announcements start.
const announceFrom = 10

// Options are the per-session settings the loop honours.
type Options struct {
	Mode  timer.Mode
	Title string
	Say   bool
}

// Result describes a finished session.
type Result struct {
	Outcome Outcome
	Final   timer.Snapshot
}

// Loop drives a Timer to completion. A Loop may be reused for sequential
// sessions but Run is not safe for concurrent use.
type Loop struct {
	clock     clock.Clock
	renderer  Renderer
	announcer Announcer
	opts      Options
	log       zerolog.Logger
}

// New returns a Loop. A nil announcer disables announcements even when
// opts.Say is set.
func New(c clock.Clock, r Renderer, a Announcer, opts Options, log zerolog.Logger) *Loop {
	return &Loop{
		clock:     c,
		renderer:  r,
		announcer: a,
		opts:      opts,
		log:       log,
	}
}

// Run counts total down until the deadline fires, the user quits, ctx is
// cancelled or events is closed. Expiry does not render a final frame. A
// render error ends the session with OutcomeFailed and is returned.
func (l *Loop) Run(ctx context.Context, total time.Duration, events <-chan Event) (Result, error) {
	state := timer.New(total, l.opts.Mode)
	done := func(o Outcome) Result {
		return Result{Outcome: o, Final: state.Snapshot()}
	}

	ticker := l.clock.NewTicker(time.Second)
	defer ticker.Stop()

	deadline := l.clock.NewTimer(total)
	defer func() { deadline.Stop() }()
	expired := deadline.C()

	l.log.Info().
		Dur("total", total).
		Str("mode", l.opts.Mode.String()).
		Msg("session started")

	if err := l.render(state); err != nil {
		return done(OutcomeFailed), err
	}
	l.announce(ctx, state)

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Err(ctx.Err()).Msg("session cancelled")
			return done(OutcomeInterrupted), nil

		case <-expired:
			l.log.Info().Msg("session expired")
			return done(OutcomeExpired), nil

		case <-ticker.C():
			if state.Paused() {
				continue
			}
			state.Tick()
			if err := l.render(state); err != nil {
				return done(OutcomeFailed), err
			}
			l.announce(ctx, state)

		case ev, ok := <-events:
			if !ok {
				l.log.Debug().Msg("input closed")
				return done(OutcomeInterrupted), nil
			}
			l.log.Trace().Stringer("event", ev).Msg("input")

			switch ev {
			case EventQuit:
				l.log.Info().Dur("remaining", state.Remaining()).Msg("session quit")
				return done(OutcomeInterrupted), nil

			case EventPauseToggle:
				if state.Paused() {
					state.Resume()
					// Re-anchor both sources on the time left now; the old
					// deadline was stopped at pause.
					deadline = l.clock.NewTimer(state.Remaining())
					expired = deadline.C()
					ticker.Reset(time.Second)
					drain(ticker.C())
					l.log.Debug().Dur("remaining", state.Remaining()).Msg("resumed")
				} else {
					state.Pause()
					deadline.Stop()
					expired = nil
					l.log.Debug().Dur("remaining", state.Remaining()).Msg("paused")
				}
				if err := l.render(state); err != nil {
					return done(OutcomeFailed), err
				}

			case EventResize:
				if err := l.renderer.Clear(); err != nil {
					return done(OutcomeFailed), err
				}
				if err := l.render(state); err != nil {
					return done(OutcomeFailed), err
				}
			}
		}
	}
}

func (l *Loop) render(state *timer.Timer) error {
	return l.renderer.Render(Frame{
		Display: state.Display(),
		Title:   l.opts.Title,
		Paused:  state.Paused(),
	})
}

// announce fires and forgets. Only count-down sessions announce, and only in
// the last ten seconds. An announcement in flight outlives the session.
func (l *Loop) announce(ctx context.Context, state *timer.Timer) {
	if !l.opts.Say || l.announcer == nil || state.Mode() != timer.CountDown {
		return
	}
	secs := int(state.Remaining() / time.Second)
	if secs < 1 || secs > announceFrom {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := l.announcer.Announce(ctx, secs); err != nil {
			l.log.Debug().Err(err).Int("seconds", secs).Msg("announce failed")
		}
	}()
}

func drain(ch <-chan time.Time) {
	select {
	case <-ch:
	default:
	}
}
