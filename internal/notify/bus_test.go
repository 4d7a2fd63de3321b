package notify

import "testing"

func TestBus_PublishReachesSubscribersInOrder(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe("units", func(p any) { got = append(got, "a:"+p.(string)) })
	b.Subscribe("units", func(p any) { got = append(got, "b:"+p.(string)) })
	b.Subscribe("palette", func(any) { got = append(got, "wrong topic") })

	b.Publish("units", "x")
	if len(got) != 2 || got[0] != "a:x" || got[1] != "b:x" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	b := New()
	n := 0
	cancel := b.Subscribe("units", func(any) { n++ })
	cancel()
	cancel()
	b.Publish("units", nil)
	if n != 0 {
		t.Fatalf("expected no delivery after cancel; got %d", n)
	}
	if b.Subscribers("units") != 0 {
		t.Fatalf("expected no subscribers left")
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	b := New()
	n := 0
	var cancel func()
	cancel = b.Subscribe("units", func(any) {
		n++
		cancel()
	})
	b.Publish("units", nil)
	b.Publish("units", nil)
	if n != 1 {
		t.Fatalf("expected a single delivery; got %d", n)
	}
}

func TestBus_NilBusIsInert(t *testing.T) {
	var b *Bus
	b.Publish("units", nil)
	b.Subscribe("units", func(any) {})()
}
