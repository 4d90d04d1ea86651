package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func fired(ch <-chan time.Time) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestFakeTimerFiresOnce(t *testing.T) {
	c := NewFake(epoch)
	tm := c.NewTimer(3 * time.Second)

	c.Advance(2 * time.Second)
	assert.False(t, fired(tm.C()))

	c.Advance(time.Second)
	assert.True(t, fired(tm.C()))

	c.Advance(10 * time.Second)
	assert.False(t, fired(tm.C()))
	assert.Equal(t, 0, c.Pending())
}

func TestFakeTimerStop(t *testing.T) {
	c := NewFake(epoch)
	tm := c.NewTimer(time.Second)

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Minute)
	assert.False(t, fired(tm.C()))
}

func TestFakeTickerCoalesces(t *testing.T) {
	c := NewFake(epoch)
	tk := c.NewTicker(time.Second)

	c.Advance(5 * time.Second)
	assert.True(t, fired(tk.C()))
	assert.False(t, fired(tk.C()))

	c.Advance(time.Second)
	assert.True(t, fired(tk.C()))
}

func TestFakeTickerReset(t *testing.T) {
	c := NewFake(epoch)
	tk := c.NewTicker(time.Second)

	c.Advance(1500 * time.Millisecond)
	assert.True(t, fired(tk.C()))

	tk.Reset(time.Second)
	c.Advance(900 * time.Millisecond)
	assert.False(t, fired(tk.C()))
	c.Advance(100 * time.Millisecond)
	assert.True(t, fired(tk.C()))
}

func TestFakeNow(t *testing.T) {
	c := NewFake(epoch)
	c.Advance(90 * time.Second)
	assert.Equal(t, epoch.Add(90*time.Second), c.Now())
}

func TestRealClock(t *testing.T) {
	c := Real()
	tm := c.NewTimer(time.Millisecond)
	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}

	tk := c.NewTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker did not tick")
	}
}
