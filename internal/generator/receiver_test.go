package generator

import (
	"testing"
	"time"

	"github.com/joshuafuller/dnsgen/internal/packetsocket"
)

func TestRunReceiverCountsFramesThenStops(t *testing.T) {
	ring := packetsocket.NewRingSource()
	ring.Push([]byte("reply-1"), packetsocket.LinkAddr{})
	ring.Push([]byte("reply-2"), packetsocket.LinkAddr{})
	ring.Push([]byte("reply-3"), packetsocket.LinkAddr{})

	gs := &sharedState{}
	ts := &threadState{ring: ring}

	done := make(chan error, 1)
	go func() { done <- runReceiver(gs, ts) }()

	deadline := time.After(2 * time.Second)
	for ring.Remaining() > 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for receiver to drain ring")
		default:
		}
	}

	gs.stop.Store(true)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runReceiver returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runReceiver did not exit after stop was set")
	}

	if ts.rxCount != 3 {
		t.Fatalf("ts.rxCount = %d, want 3", ts.rxCount)
	}
	if gs.rxCount.Load() != 3 {
		t.Fatalf("gs.rxCount = %d, want 3", gs.rxCount.Load())
	}
}
