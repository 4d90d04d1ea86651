package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, LevelForVerbosity(0, zerolog.WarnLevel))
	assert.Equal(t, zerolog.ErrorLevel, LevelForVerbosity(-1, zerolog.ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, LevelForVerbosity(1, zerolog.WarnLevel))
	assert.Equal(t, zerolog.DebugLevel, LevelForVerbosity(2, zerolog.WarnLevel))
	assert.Equal(t, zerolog.TraceLevel, LevelForVerbosity(3, zerolog.WarnLevel))
	assert.Equal(t, zerolog.TraceLevel, LevelForVerbosity(9, zerolog.WarnLevel))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "countdown.log")
	logger, closer, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info().Str("mode", "down").Msg("session started")
	logger.Debug().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"session started"`)
	assert.Contains(t, string(data), `"mode":"down"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewWithoutSinkIsNop(t *testing.T) {
	logger, closer, err := New(Options{Level: "trace"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	assert.NoError(t, closer.Close())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
