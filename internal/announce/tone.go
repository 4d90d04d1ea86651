package announce

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	beepLength = 150 * time.Millisecond

	lowPitch  = 660.0
	highPitch = 990.0
)

// Tone plays a short sine beep per second, higher for the final three.
type Tone struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
}

func NewTone() *Tone {
	return &Tone{}
}

// Pitch returns the tone frequency used for seconds.
func Pitch(seconds int) float64 {
	if seconds <= 3 {
		return highPitch
	}
	return lowPitch
}

func (t *Tone) init() error {
	t.once.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			t.initErr = fmt.Errorf("init speaker: %w", err)
		}
	})
	return t.initErr
}

func (t *Tone) Announce(ctx context.Context, seconds int) error {
	if err := t.init(); err != nil {
		return err
	}

	tone, err := generators.SineTone(sampleRate, Pitch(seconds))
	if err != nil {
		return fmt.Errorf("sine tone: %w", err)
	}

	done := make(chan struct{})
	t.mu.Lock()
	speaker.Play(beep.Seq(
		beep.Take(sampleRate.N(beepLength), tone),
		beep.Callback(func() { close(done) }),
	))
	t.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
