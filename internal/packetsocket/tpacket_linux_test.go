//go:build linux

package packetsocket

import "testing"

func TestTpacketAlignRoundsUp(t *testing.T) {
	cases := map[int]int{
		0:  0,
		1:  16,
		15: 16,
		16: 16,
		17: 32,
	}
	for in, want := range cases {
		if got := tpacketAlign(in); got != want {
			t.Fatalf("tpacketAlign(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHtonsSwapsBytes(t *testing.T) {
	if got := htons(0x0008); got != 0x0800 {
		t.Fatalf("htons(0x0008) = %#04x, want 0x0800", got)
	}
	if got := htons(htons(0x1234)); got != 0x1234 {
		t.Fatalf("htons is not its own inverse: got %#04x", got)
	}
}
