package cursorwire

import (
	"testing"
	"time"
)

type sample struct{ x, y int }

func collectFlushes() (*Throttler, chan sample) {
	ch := make(chan sample, 16)
	t := NewThrottler(30*time.Millisecond, func(x, y int) {
		ch <- sample{x, y}
	})
	return t, ch
}

func TestThrottlerTrailingEdgeOnly(t *testing.T) {
	th, ch := collectFlushes()
	defer th.Stop()

	th.Sample(1, 1)
	// The leading sample must be suppressed; nothing fires inside the window.
	select {
	case s := <-ch:
		t.Fatalf("leading-edge flush: %+v", s)
	case <-time.After(10 * time.Millisecond):
	}

	select {
	case s := <-ch:
		if s != (sample{1, 1}) {
			t.Fatalf("got %+v, want {1 1}", s)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("trailing flush never fired")
	}
}

func TestThrottlerBurstCollapsesToLastSample(t *testing.T) {
	th, ch := collectFlushes()
	defer th.Stop()

	for i := 1; i <= 20; i++ {
		th.Sample(i, -i)
	}

	select {
	case s := <-ch:
		if s != (sample{20, -20}) {
			t.Fatalf("got %+v, want the last sample {20 -20}", s)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("flush never fired")
	}

	// Exactly one flush for the burst.
	select {
	case s := <-ch:
		t.Fatalf("extra flush: %+v", s)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestThrottlerSecondWindowFiresAgain(t *testing.T) {
	th, ch := collectFlushes()
	defer th.Stop()

	th.Sample(1, 1)
	if s := <-ch; s != (sample{1, 1}) {
		t.Fatalf("first window: got %+v", s)
	}

	th.Sample(2, 2)
	select {
	case s := <-ch:
		if s != (sample{2, 2}) {
			t.Fatalf("second window: got %+v", s)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("second window never flushed")
	}
}

func TestThrottlerStopCancelsPendingFlush(t *testing.T) {
	th, ch := collectFlushes()

	th.Sample(5, 5)
	th.Stop()

	select {
	case s := <-ch:
		t.Fatalf("flush after Stop: %+v", s)
	case <-time.After(80 * time.Millisecond):
	}

	// Samples after Stop are silently dropped.
	th.Sample(6, 6)
	select {
	case s := <-ch:
		t.Fatalf("flush after Stop: %+v", s)
	case <-time.After(80 * time.Millisecond):
	}
}
