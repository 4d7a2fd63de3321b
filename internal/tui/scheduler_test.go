package tui

import (
	"testing"
	"time"
)

func TestTeaScheduler_FireAndStop(t *testing.T) {
	s := newTeaScheduler()
	var fired []int
	a := s.AfterFunc(time.Millisecond, func() { fired = append(fired, 1) })
	s.AfterFunc(time.Millisecond, func() { fired = append(fired, 2) })

	if s.pending() != 2 {
		t.Fatalf("expected 2 pending timers; got %d", s.pending())
	}
	if !a.Stop() {
		t.Fatalf("expected Stop to report an armed timer")
	}
	if a.Stop() {
		t.Fatalf("expected a second Stop to report false")
	}
	s.fire(1)
	s.fire(2)
	s.fire(2)
	if len(fired) != 1 || fired[0] != 2 {
		t.Fatalf("expected only the second callback once; got %v", fired)
	}
}

func TestTeaScheduler_DrainOnce(t *testing.T) {
	s := newTeaScheduler()
	if s.drain() != nil {
		t.Fatalf("expected nothing to drain")
	}
	s.AfterFunc(time.Millisecond, func() {})
	if s.drain() == nil {
		t.Fatalf("expected the armed tick")
	}
	if s.drain() != nil {
		t.Fatalf("expected ticks to drain once")
	}
}
