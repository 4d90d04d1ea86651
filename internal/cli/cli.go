// Package cli is the countdown command line: it validates DURATION before
// the screen is taken over and maps session outcomes onto exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"countdown/internal/announce"
	"countdown/internal/app"
	"countdown/internal/config"
	"countdown/internal/diag"
	"countdown/internal/logging"
	"countdown/internal/session"
	"countdown/internal/timelog"
	"countdown/internal/timeparse"
	"countdown/internal/timer"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

const historyLimit = 20

// usageError marks bad invocations; they exit with ExitUsage and print the
// command usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// RunFunc runs one validated session.
type RunFunc func(ctx context.Context, r *app.Runner, s app.Session) (session.Result, error)

type options struct {
	cfgPath   string
	verbosity int
	up        bool
	say       bool
	title     string
	selfTest  bool
	history   bool
	noHistory bool
	writeCfg  bool
}

// NewRootCmd creates the countdown command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(func(ctx context.Context, r *app.Runner, s app.Session) (session.Result, error) {
		return r.Run(ctx, s)
	})
}

func newRootCmd(run RunFunc) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "countdown [flags] DURATION",
		Short: "Full-screen terminal countdown timer",
		Long: "Counts down (or up) from DURATION in large digits.\n" +
			"Press space or p to pause, q, esc or ctrl+c to quit.",
		Example: "  countdown 25s\n" +
			"  countdown 1m50s\n" +
			"  countdown 2h45m50s\n" +
			"  countdown 02:15PM\n" +
			"  countdown 14:15\n" +
			"  countdown -u -t Tea 3m",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, run)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	fs := cmd.Flags()
	fs.BoolVarP(&opts.up, "up", "u", false, "count up from zero instead of down")
	fs.BoolVarP(&opts.say, "say", "s", false, "announce the last ten seconds")
	fs.StringVarP(&opts.title, "title", "t", "", "label shown under the digits")
	fs.BoolVar(&opts.selfTest, "test", false, "run the built-in self test and exit")
	fs.BoolVar(&opts.history, "history", false, "list recent sessions and exit")
	fs.BoolVar(&opts.noHistory, "no-history", false, "do not record this session")
	fs.StringVar(&opts.cfgPath, "config", config.DefaultPath(), "config file path")
	fs.BoolVar(&opts.writeCfg, "write-config", false, "save the effective settings to the config file and exit")
	fs.CountVarP(&opts.verbosity, "verbose", "v", "increase log detail (-v, -vv, -vvv)")
	return cmd
}

func (o *options) run(cmd *cobra.Command, args []string, run RunFunc) error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), o, &cfg)

	switch {
	case o.selfTest:
		log, closer, err := o.logger(cfg, true)
		if err != nil {
			return err
		}
		defer closer.Close()
		log.Debug().Msg("Running self test")
		return diag.Run(cmd.OutOrStdout(), time.Now())
	case o.history:
		return o.printHistory(cmd.OutOrStdout(), cfg)
	case o.writeCfg:
		if err := config.Save(o.cfgPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", o.cfgPath)
		return nil
	}

	if len(args) == 0 {
		return &usageError{err: errors.New("missing DURATION")}
	}
	total, err := timeparse.ParseNow(args[0])
	if err != nil {
		return &usageError{err: err}
	}

	log, closer, err := o.logger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	runner := &app.Runner{
		Config: cfg,
		Log:    log,
	}
	if cfg.Say {
		runner.Announcer = announce.Default()
	}
	if cfg.History.Enabled {
		repo, err := timelog.NewRepository(cfg.History.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.History.Path).Msg("History disabled")
		} else {
			defer repo.Close()
			runner.History = repo
		}
	}

	mode := timer.CountDown
	if cfg.Up {
		mode = timer.CountUp
	}
	s := app.Session{
		Input: args[0],
		Total: total,
		Mode:  mode,
		Title: cfg.Title,
		Say:   cfg.Say,
	}
	log.Info().Str("input", s.Input).Dur("total", s.Total).Str("mode", mode.String()).Msg("Starting session")

	res, err := run(cmd.Context(), runner, s)
	if err != nil {
		return err
	}
	log.Info().Str("outcome", res.Outcome.String()).Msg("Session finished")
	return nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(fs *pflag.FlagSet, o *options, cfg *config.Config) {
	if fs.Changed("up") {
		cfg.Up = o.up
	}
	if fs.Changed("say") {
		cfg.Say = o.say
	}
	if fs.Changed("title") {
		cfg.Title = o.title
	}
	if o.noHistory {
		cfg.History.Enabled = false
	}
}

func (o *options) logger(cfg config.Config, console bool) (zerolog.Logger, io.Closer, error) {
	log, closer, err := logging.New(logging.Options{
		Level:     cfg.Log.Level,
		Verbosity: o.verbosity,
		File:      cfg.Log.File,
		Console:   console,
	})
	if err != nil {
		return log, closer, fmt.Errorf("logging: %w", err)
	}
	return log, closer, nil
}

func (o *options) printHistory(w io.Writer, cfg config.Config) error {
	log, closer, err := o.logger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Debug().Str("path", cfg.History.Path).Msg("Opening history")
	repo, err := timelog.NewRepository(cfg.History.Path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return app.PrintHistory(w, repo, historyLimit, time.Now())
}

// Execute runs the command against os.Args and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	return execute(ctx, cmd, os.Args[1:], os.Stderr)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	return exitCode(cmd, err, stderr)
}

func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, app.ErrInterrupted) {
		return ExitInterrupted
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var usage *usageError
	var perr *timeparse.Error
	switch {
	case errors.As(err, &perr):
		fmt.Fprintf(stderr, "\nSupported formats:\n  %s\n\n", strings.Join(timeparse.Formats, "\n  "))
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	case errors.As(err, &usage), isArgsError(err):
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	return ExitError
}

// cobra reports positional argument violations as plain errors.
func isArgsError(err error) bool {
	return strings.HasPrefix(err.Error(), "accepts at most") || strings.HasPrefix(err.Error(), "unknown command")
}
