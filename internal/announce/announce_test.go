package announce

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/internal/session"
)

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Announce(context.Background(), 5))
}

func TestPitch(t *testing.T) {
	assert.Equal(t, lowPitch, Pitch(10))
	assert.Equal(t, lowPitch, Pitch(4))
	assert.Equal(t, highPitch, Pitch(3))
	assert.Equal(t, highPitch, Pitch(1))
}

func fakeSay(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script helper")
	}
	path := filepath.Join(t.TempDir(), "say")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestSayPassesSeconds(t *testing.T) {
	out := filepath.Join(t.TempDir(), "said")
	say := NewSay(fakeSay(t, `echo "$1" > `+out+"\n"))

	require.NoError(t, say.Announce(context.Background(), 7))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "7\n", string(data))
}

func TestSayReportsFailure(t *testing.T) {
	say := NewSay(fakeSay(t, "echo boom >&2\nexit 3\n"))

	err := say.Announce(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

var (
	_ session.Announcer = (*Say)(nil)
	_ session.Announcer = (*Tone)(nil)
	_ session.Announcer = Noop{}
)

func TestDefaultIsNeverNil(t *testing.T) {
	assert.NotNil(t, Default())
}
