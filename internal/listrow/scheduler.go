package listrow

import (
	"sort"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks later on the event loop. Implementations must
// invoke fn on the same goroutine that dispatches pointer events, so the
// engine never needs locks around row state.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// FrameInterval is the step used by Animate.
const FrameInterval = 16 * time.Millisecond

// Animate calls step with progress values in (0, 1] spread over d and then
// done. The returned stop func aborts the animation without calling done.
func Animate(s Scheduler, d time.Duration, step func(t float64), done func()) (stop func()) {
	if s == nil || d <= 0 {
		if step != nil {
			step(1)
		}
		if done != nil {
			done()
		}
		return func() {}
	}
	frames := int((d + FrameInterval - 1) / FrameInterval)
	if frames < 1 {
		frames = 1
	}
	stopped := false
	var cur Timer
	var tick func(n int)
	tick = func(n int) {
		if stopped {
			return
		}
		if step != nil {
			step(float64(n) / float64(frames))
		}
		if n >= frames {
			if done != nil {
				done()
			}
			return
		}
		cur = s.AfterFunc(FrameInterval, func() { tick(n + 1) })
	}
	cur = s.AfterFunc(FrameInterval, func() { tick(1) })
	return func() {
		stopped = true
		if cur != nil {
			cur.Stop()
		}
	}
}

// ManualScheduler is a deterministic Scheduler driven by Advance. It is
// used by headless embedders and tests.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	queued []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.queued = append(s.queued, t)
	return t
}

// Now is the virtual time elapsed so far.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending reports how many timers are still scheduled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.queued {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing due timers in deadline
// order. Timers scheduled by callbacks fire too if they fall due.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		s.now = t.at
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = end
	s.compact()
}

// Flush fires everything that is scheduled, including chains of timers,
// up to a generous virtual horizon.
func (s *ManualScheduler) Flush() {
	s.Advance(time.Minute)
}

func (s *ManualScheduler) next(end time.Duration) *manualTimer {
	live := make([]*manualTimer, 0, len(s.queued))
	for _, t := range s.queued {
		if !t.stopped && !t.fired && t.at <= end {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (s *ManualScheduler) compact() {
	out := s.queued[:0]
	for _, t := range s.queued {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	s.queued = out
}
