// Package scheduler owns the day-boundary timer: a single one-shot timer
// aimed at the next local midnight that re-arms itself after every fire. It
// only signals; the sweep it triggers lives with the task engine.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Tick marks one crossed day boundary.
type Tick struct {
	// Day is the calendar date that just began.
	Day time.Time
}

type Engine struct {
	mu      sync.Mutex
	now     func() time.Time
	out     chan Tick
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

type Option func(*Engine)

// WithClock replaces the wall clock for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		out:    make(chan Tick, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) C() <-chan Tick {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Dropped counts ticks discarded because the consumer was not reading. The
// sweep is idempotent within a day, so a dropped tick only delays work until
// the next one.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		now := e.now()
		wait := NextMidnight(now).Sub(now)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			tick := Tick{Day: e.now()}
			select {
			case e.out <- tick:
			default:
				atomic.AddUint64(&e.dropped, 1)
			}
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

// NextMidnight returns the start of the calendar day after now, in now's
// location.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
