package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Tickers and timers fire only from
// Advance, in order of due time and then creation order. Like the time
// package, a ticker whose channel is still full drops the tick.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	waiters []*waiter
}

type waiter struct {
	seq    int
	due    time.Time
	period time.Duration // zero for one-shot timers
	ch     chan time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	return &fakeTicker{f: f, w: f.add(d, d)}
}

func (f *Fake) NewTimer(d time.Duration) Timer {
	return &fakeTimer{f: f, w: f.add(d, 0)}
}

func (f *Fake) add(d, period time.Duration) *waiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	w := &waiter{seq: f.seq, due: f.now.Add(d), period: period, ch: make(chan time.Time, 1)}
	f.waiters = append(f.waiters, w)
	return w
}

// Advance moves the clock forward by d, firing everything that comes due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	end := f.now.Add(d)
	for {
		w := f.nextDue(end)
		if w == nil {
			break
		}
		f.now = w.due
		select {
		case w.ch <- w.due:
		default:
		}
		if w.period > 0 {
			w.due = w.due.Add(w.period)
		} else {
			f.remove(w)
		}
	}
	f.now = end
}

// Pending reports how many tickers and timers are armed.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

func (f *Fake) nextDue(end time.Time) *waiter {
	sort.SliceStable(f.waiters, func(i, j int) bool {
		a, b := f.waiters[i], f.waiters[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	if len(f.waiters) == 0 || f.waiters[0].due.After(end) {
		return nil
	}
	return f.waiters[0]
}

func (f *Fake) remove(w *waiter) bool {
	for i, cur := range f.waiters {
		if cur == w {
			f.waiters = append(f.waiters[:i], f.waiters[i+1:]...)
			return true
		}
	}
	return false
}

type fakeTicker struct {
	f *Fake
	w *waiter
}

func (t *fakeTicker) C() <-chan time.Time { return t.w.ch }

func (t *fakeTicker) Stop() {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	t.f.remove(t.w)
}

func (t *fakeTicker) Reset(d time.Duration) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	t.f.remove(t.w)
	t.w.period = d
	t.w.due = t.f.now.Add(d)
	t.f.waiters = append(t.f.waiters, t.w)
}

type fakeTimer struct {
	f *Fake
	w *waiter
}

func (t *fakeTimer) C() <-chan time.Time { return t.w.ch }

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	return t.f.remove(t.w)
}
