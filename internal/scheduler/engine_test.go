package scheduler

import (
	"testing"
	"time"
)

func TestNextMidnight(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 4, 5, 123, time.UTC)
	next := NextMidnight(now)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next midnight got %s want %s", next, want)
	}
}

func TestNextMidnightAtExactMidnight(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	next := NextMidnight(now)
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next midnight at midnight got %s want %s", next, want)
	}
}

func TestNextMidnightCrossesMonthEnd(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	next := NextMidnight(now)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next midnight got %s want %s", next, want)
	}
}

func TestEngineFiresAtDayBoundary(t *testing.T) {
	start := time.Now()
	base := time.Date(2024, 3, 10, 23, 59, 59, int(980*time.Millisecond), time.UTC)
	engine := NewEngine(WithClock(func() time.Time {
		return base.Add(time.Since(start))
	}))
	engine.Start()
	defer engine.Stop()

	select {
	case tick := <-engine.C():
		if tick.Day.Day() != 11 {
			t.Fatalf("tick day got %s want start of Mar 11", tick.Day)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected day-boundary tick")
	}
}

func TestEngineStopIsIdempotent(t *testing.T) {
	engine := NewEngine()
	engine.Start()
	engine.Stop()
	engine.Stop()
}

func TestEngineStartTwice(t *testing.T) {
	engine := NewEngine()
	engine.Start()
	engine.Start()
	engine.Stop()
}
