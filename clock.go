package blochsphere

import (
	"context"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Clock supplies the current time to the frame loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (with its monotonic reading).
type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to, for tests and replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

/*
Loop owns a Session and drives it from a ticker at the configured frame
rate, turning wall-clock deltas into Session.Tick calls.

The session itself is single-threaded; Loop serializes every access to it
behind one mutex so UI glue running on other goroutines can use Do and
Measure safely. Measurement callbacks run after the lock is released, so
they may call back into the Loop.
*/
type Loop struct {
	mu       sync.Mutex
	session  *Session
	clock    Clock
	interval time.Duration
	last     time.Time
	deferred []func()
}

func NewLoop(session *Session, clock Clock) *Loop {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &Loop{
		session:  session,
		clock:    clock,
		interval: session.Config().FrameInterval(),
		last:     clock.Now(),
	}
}

// Run ticks the session until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	errnie.Info("Loop.Run - ticking every %s", l.interval)

	for {
		select {
		case <-ctx.Done():
			errnie.Info("Loop.Run - stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step performs one frame using the time elapsed since the previous step.
func (l *Loop) Step() {
	l.mu.Lock()
	now := l.clock.Now()
	dt := now.Sub(l.last)
	l.last = now
	l.session.Tick(dt)
	deferred := l.deferred
	l.deferred = nil
	l.mu.Unlock()

	for _, fn := range deferred {
		fn()
	}
}

// Do runs fn with exclusive access to the session.
func (l *Loop) Do(fn func(*Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.session)
}

// Measure schedules a measurement whose callback runs outside the lock.
func (l *Loop) Measure(callback func(Outcome)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.session.Measure(func(o Outcome) {
		if callback == nil {
			return
		}
		l.deferred = append(l.deferred, func() { callback(o) })
	})
}
