package source

import (
	"sync"
	"time"

	"github.com/stealthrocket/genstream"
)

// A Timer is a pollable that resolves once its deadline has passed, reporting
// the deadline. Before that, each poll re-arms a wake-up call for the waker
// it received, so the generator is woken by whichever poll came last.
type Timer struct {
	deadline time.Time

	mu  sync.Mutex
	arm *time.Timer
}

// After returns a timer that resolves d from now.
func After(d time.Duration) *Timer {
	return At(time.Now().Add(d))
}

// At returns a timer that resolves at deadline t.
func At(t time.Time) *Timer {
	return &Timer{deadline: t}
}

// Poll implements genstream.Pollable.
func (t *Timer) Poll(w genstream.Waker) genstream.Poll[time.Time] {
	if !time.Now().Before(t.deadline) {
		t.Stop()
		return genstream.Ready(t.deadline)
	}
	t.rearm(w)
	return genstream.NotReady[time.Time]()
}

// Stop releases the wake-up armed by the most recent poll, if any. It does
// not stop the deadline from passing; a fired timer stays ready. Callers that
// abandon a timer mid-await should stop it so the last waker is released.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.arm != nil {
		t.arm.Stop()
		t.arm = nil
	}
	t.mu.Unlock()
}

func (t *Timer) rearm(w genstream.Waker) {
	t.mu.Lock()
	if t.arm != nil {
		t.arm.Stop()
	}
	t.arm = time.AfterFunc(time.Until(t.deadline), w.Wake)
	t.mu.Unlock()
}

// A Ticker is a pollable that resolves once per period, reporting the tick's
// scheduled time. A consumer that falls behind observes consecutive ready
// polls, one per elapsed period, until it has caught up with the schedule.
type Ticker struct {
	period time.Duration

	mu   sync.Mutex
	next time.Time
	arm  *time.Timer
}

// Every returns a ticker that resolves every d, the first time d from now.
// It panics if d is not positive.
func Every(d time.Duration) *Ticker {
	if d <= 0 {
		panic("source: Every with a non-positive period")
	}
	return &Ticker{period: d, next: time.Now().Add(d)}
}

// Poll implements genstream.Pollable. A ready poll consumes the tick and
// schedules the next one a period later.
func (t *Ticker) Poll(w genstream.Waker) genstream.Poll[time.Time] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !time.Now().Before(t.next) {
		tick := t.next
		t.next = tick.Add(t.period)
		return genstream.Ready(tick)
	}
	if t.arm != nil {
		t.arm.Stop()
	}
	t.arm = time.AfterFunc(time.Until(t.next), w.Wake)
	return genstream.NotReady[time.Time]()
}

// Stop releases the wake-up armed by the most recent poll. The schedule
// itself is unaffected; polling again resumes it.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if t.arm != nil {
		t.arm.Stop()
		t.arm = nil
	}
	t.mu.Unlock()
}
