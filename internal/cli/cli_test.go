package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"countdown/internal/app"
	"countdown/internal/config"
	"countdown/internal/session"
	"countdown/internal/timer"
)

type CLISuite struct {
	suite.Suite
	dir     string
	cfgPath string

	calls  int
	runner *app.Runner
	sess   app.Session
	result session.Result
	err    error
}

func (s *CLISuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.cfgPath = filepath.Join(s.dir, "config.yaml")
	s.calls = 0
	s.runner = nil
	s.sess = app.Session{}
	s.result = session.Result{Outcome: session.OutcomeExpired}
	s.err = nil

	cfg := config.Default()
	cfg.History.Path = filepath.Join(s.dir, "history.db")
	s.Require().NoError(config.Save(s.cfgPath, cfg))
}

func (s *CLISuite) fakeRun(_ context.Context, r *app.Runner, sess app.Session) (session.Result, error) {
	s.calls++
	s.runner = r
	s.sess = sess
	return s.result, s.err
}

func (s *CLISuite) exec(args ...string) (int, string, string) {
	cmd := newRootCmd(s.fakeRun)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	args = append([]string{"--config", s.cfgPath}, args...)
	code := execute(context.Background(), cmd, args, &stderr)
	return code, stdout.String(), stderr.String()
}

func (s *CLISuite) TestRunsSession() {
	code, _, stderr := s.exec("--no-history", "1m30s")
	s.Equal(ExitOK, code)
	s.Empty(stderr)
	s.Require().Equal(1, s.calls)
	s.Equal("1m30s", s.sess.Input)
	s.Equal(90*time.Second, s.sess.Total)
	s.Equal(timer.CountDown, s.sess.Mode)
	s.Nil(s.runner.History)
	s.Nil(s.runner.Announcer)
}

func (s *CLISuite) TestFlagsOverrideConfig() {
	cfg, err := config.Load(s.cfgPath)
	s.Require().NoError(err)
	cfg.Up = true
	cfg.Title = "from file"
	s.Require().NoError(config.Save(s.cfgPath, cfg))

	code, _, _ := s.exec("--no-history", "-t", "Tea", "5s")
	s.Require().Equal(ExitOK, code)
	s.Equal("Tea", s.sess.Title)
	s.Equal(timer.CountUp, s.sess.Mode)

	code, _, _ = s.exec("--no-history", "--up=false", "-s", "5s")
	s.Require().Equal(ExitOK, code)
	s.Equal("from file", s.sess.Title)
	s.Equal(timer.CountDown, s.sess.Mode)
	s.True(s.sess.Say)
	s.NotNil(s.runner.Announcer)
}

func (s *CLISuite) TestHistoryEnabledOpensStore() {
	code, _, _ := s.exec("5s")
	s.Require().Equal(ExitOK, code)
	s.NotNil(s.runner.History)
	s.FileExists(filepath.Join(s.dir, "history.db"))
}

func (s *CLISuite) TestInvalidDuration() {
	code, _, stderr := s.exec("5")
	s.Equal(ExitUsage, code)
	s.Zero(s.calls)
	s.Contains(stderr, `Error: invalid duration: "5"`)
	s.Contains(stderr, "Supported formats:")
	s.Contains(stderr, "1m30s")
	s.Contains(stderr, "Usage:")
}

func (s *CLISuite) TestInvalidFormat() {
	code, _, stderr := s.exec("tomorrow")
	s.Equal(ExitUsage, code)
	s.Contains(stderr, `invalid format: "tomorrow"`)
}

func (s *CLISuite) TestMissingDuration() {
	code, _, stderr := s.exec()
	s.Equal(ExitUsage, code)
	s.Zero(s.calls)
	s.Contains(stderr, "missing DURATION")
	s.Contains(stderr, "Usage:")
}

func (s *CLISuite) TestBadInvocation() {
	code, _, stderr := s.exec("5s", "10s")
	s.Equal(ExitUsage, code)
	s.Contains(stderr, "accepts at most 1 arg")

	code, _, stderr = s.exec("--bogus", "5s")
	s.Equal(ExitUsage, code)
	s.Contains(stderr, "unknown flag: --bogus")
}

func (s *CLISuite) TestInterrupted() {
	s.result = session.Result{Outcome: session.OutcomeInterrupted}
	s.err = app.ErrInterrupted
	code, _, stderr := s.exec("--no-history", "5s")
	s.Equal(ExitInterrupted, code)
	s.Empty(stderr)
}

func (s *CLISuite) TestRuntimeError() {
	s.result = session.Result{Outcome: session.OutcomeFailed}
	s.err = errors.New("render: broken pipe")
	code, _, stderr := s.exec("--no-history", "5s")
	s.Equal(ExitError, code)
	s.Contains(stderr, "Error: render: broken pipe")
	s.NotContains(stderr, "Usage:")
}

func (s *CLISuite) TestBadConfig() {
	cfg := config.Default()
	cfg.Keys.Quit = []string{"space"}
	s.Require().NoError(config.Save(s.cfgPath, cfg))

	code, _, stderr := s.exec("5s")
	s.Equal(ExitError, code)
	s.Contains(stderr, "key bound to both pause and quit")
}

func (s *CLISuite) TestSelfTest() {
	code, stdout, _ := s.exec("--test")
	s.Equal(ExitOK, code)
	s.Zero(s.calls)
	s.Contains(stdout, "Testing duration parsing...")
	s.Contains(stdout, "Testing font system...")
}

func (s *CLISuite) TestHistoryListing() {
	code, stdout, _ := s.exec("--history")
	s.Equal(ExitOK, code)
	s.Zero(s.calls)
	s.Equal("No sessions recorded yet.\n", stdout)
}

func (s *CLISuite) TestWriteConfig() {
	code, stdout, _ := s.exec("--write-config", "-u", "-t", "Standup", "--no-history")
	s.Require().Equal(ExitOK, code)
	s.Zero(s.calls)
	s.Equal("Wrote "+s.cfgPath+"\n", stdout)

	cfg, err := config.Load(s.cfgPath)
	s.Require().NoError(err)
	s.True(cfg.Up)
	s.Equal("Standup", cfg.Title)
	s.False(cfg.History.Enabled)

	code, _, _ = s.exec("5s")
	s.Require().Equal(ExitOK, code)
	s.Equal(timer.CountUp, s.sess.Mode)
	s.Equal("Standup", s.sess.Title)
	s.Nil(s.runner.History)
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func TestApplyFlagsNoHistory(t *testing.T) {
	cmd := newRootCmd(nil)
	require.NoError(t, cmd.Flags().Parse([]string{"--no-history"}))
	cfg := config.Default()
	applyFlags(cmd.Flags(), &options{noHistory: true}, &cfg)
	assert.False(t, cfg.History.Enabled)
	assert.False(t, cfg.Up)
}
