package listrow

import "swipelist/internal/notify"

const topicScrollStart notify.Topic = "listrow.scroll.start"

// Scrollable is the nearest scrolling ancestor of a set of rows. When it
// starts moving, every not-yet-committed row gesture is cancelled.
type Scrollable struct {
	bus       *notify.Bus
	scrolling bool
}

func NewScrollable() *Scrollable {
	return &Scrollable{bus: notify.New()}
}

// BeginScroll marks the start of a scroll; only the transition from idle
// notifies subscribers.
func (s *Scrollable) BeginScroll() {
	if s == nil || s.scrolling {
		return
	}
	s.scrolling = true
	s.bus.Publish(topicScrollStart, nil)
}

func (s *Scrollable) EndScroll() {
	if s != nil {
		s.scrolling = false
	}
}

func (s *Scrollable) Scrolling() bool { return s != nil && s.scrolling }

// OnScrollStart subscribes fn and returns an idempotent cancel func.
func (s *Scrollable) OnScrollStart(fn func()) (cancel func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	return s.bus.Subscribe(topicScrollStart, func(any) { fn() })
}
