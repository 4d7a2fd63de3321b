package tui

import (
	"time"

	"swipelist/internal/listrow"

	tea "github.com/charmbracelet/bubbletea"
)

type timerMsg struct{ id uint64 }

// teaScheduler implements listrow.Scheduler on the Bubble Tea event loop:
// each AfterFunc becomes a tea.Tick whose message fires the callback from
// Update, so row state is only ever touched by the program goroutine.
type teaScheduler struct {
	seq    uint64
	timers map[uint64]*teaTimer
	queued []tea.Cmd
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
	fn func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: map[uint64]*teaTimer{}}
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) listrow.Timer {
	s.seq++
	t := &teaTimer{s: s, id: s.seq, fn: fn}
	s.timers[t.id] = t
	id := t.id
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return t
}

// fire runs the callback of a timer that was not stopped.
func (s *teaScheduler) fire(id uint64) {
	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	if t.fn != nil {
		t.fn()
	}
}

// pending is the number of armed timers.
func (s *teaScheduler) pending() int { return len(s.timers) }

// drain returns the ticks armed since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
