package generator

import "testing"

func TestRxWindowAveragesAndCaps(t *testing.T) {
	var w rxWindow
	for i := 1; i <= 25; i++ {
		w.push(uint32(i))
	}
	if len(w.samples) != rateWindowSize {
		t.Fatalf("window size = %d, want %d", len(w.samples), rateWindowSize)
	}
	if !w.full() {
		t.Fatal("expected window to report full")
	}
	// last 20 values are 6..25, average = 15 (since len*2+1? compute directly)
	var sum uint32
	for _, v := range w.samples {
		sum += v
	}
	want := sum / uint32(len(w.samples))
	if got := w.average(); got != want {
		t.Fatalf("average = %d, want %d", got, want)
	}
}

func TestRxWindowNotFullBeforeTwentySamples(t *testing.T) {
	var w rxWindow
	w.push(10)
	w.push(20)
	if w.full() {
		t.Fatal("window should not be full with 2 samples")
	}
	if got := w.average(); got != 15 {
		t.Fatalf("average = %d, want 15", got)
	}
}
