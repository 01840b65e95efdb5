package broker

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "subscription channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertSilent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev := <-sub.Events():
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerFanOut(t *testing.T) {
	b := New(16, nil)
	s1 := b.Subscribe("default")
	s2 := b.Subscribe("default")
	defer s1.Close()
	defer s2.Close()

	ev := Event{Room: "default", User: "fox-7", X: 120, Y: -40}
	b.Publish(ev)

	assert.Equal(t, ev, recv(t, s1))
	assert.Equal(t, ev, recv(t, s2))
}

func TestBrokerRoomIsolation(t *testing.T) {
	b := New(16, nil)
	subA := b.Subscribe("a")
	subB := b.Subscribe("b")
	defer subA.Close()
	defer subB.Close()

	b.Publish(Event{Room: "b", User: "fox-7", X: 1, Y: 1})

	// A subscriber to room a never observes an event published to room b.
	assert.Equal(t, Event{Room: "b", User: "fox-7", X: 1, Y: 1}, recv(t, subB))
	assertSilent(t, subA)
}

func TestBrokerFIFOPerPublisher(t *testing.T) {
	b := New(128, nil)
	sub := b.Subscribe("default")
	defer sub.Close()

	for i := 0; i < 100; i++ {
		b.Publish(Event{Room: "default", User: "fox-7", X: i, Y: 0})
	}
	for i := 0; i < 100; i++ {
		require.Equal(t, i, recv(t, sub).X, "events reordered")
	}
}

func TestBrokerDropsForLaggingSubscriber(t *testing.T) {
	b := New(1, nil)
	sub := b.Subscribe("default")
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		// Must never block, even with a full subscriber buffer.
		for i := 0; i < 10; i++ {
			b.Publish(Event{Room: "default", User: "fox-7", X: i, Y: 0})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a lagging subscriber")
	}
	assert.Equal(t, 0, recv(t, sub).X, "buffered event should be the first one")
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	b := New(16, nil)
	sub := b.Subscribe("default")
	sub.Close()
	sub.Close() // must not panic or error

	_, ok := <-sub.Events()
	assert.False(t, ok, "channel should be closed")

	// Publishing after close must not panic either.
	b.Publish(Event{Room: "default", User: "fox-7"})
}

func TestBrokerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	b := New(1, m)

	sub := b.Subscribe("default")
	defer sub.Close()
	other := b.Subscribe("other")
	defer other.Close()

	b.Publish(Event{Room: "default", User: "fox-7", X: 1})
	b.Publish(Event{Room: "default", User: "fox-7", X: 2}) // buffer full, dropped

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Published))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Delivered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dropped))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Subscriptions))
}
