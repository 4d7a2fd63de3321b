// Package notify is a small synchronous observer bus. Components subscribe
// to named topics ("units changed", "palette changed") without knowing who
// publishes them.
package notify

import "sync"

type Topic string

// Bus delivers published payloads to subscribers of a topic, in
// subscription order, on the publisher's goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]subscription
}

type subscription struct {
	id uint64
	fn func(any)
}

func New() *Bus { return &Bus{} }

// Subscribe registers fn for topic and returns a function that removes it.
// The returned cancel func is safe to call more than once.
func (b *Bus) Subscribe(topic Topic, fn func(payload any)) (cancel func()) {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	if b.subs == nil {
		b.subs = map[Topic][]subscription{}
	}
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(topic, id) })
	}
}

func (b *Bus) unsubscribe(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber of topic with payload. Subscribers added or
// removed during delivery take effect on the next Publish.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[topic]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(payload)
	}
}

// Subscribers reports how many subscribers topic has.
func (b *Bus) Subscribers(topic Topic) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
