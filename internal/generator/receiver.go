package generator

import "github.com/joshuafuller/dnsgen/internal/packetsocket"

const receiverPollTimeoutMs = 10

// runReceiver drains ts's RX ring until gs.stop is set, counting every
// frame observed (spec.md §4.5). Replies are never parsed, only counted.
func runReceiver(gs *sharedState, ts *threadState) error {
	count := func(buf []byte, _ packetsocket.LinkAddr) (int, error) {
		ts.rxCount++
		gs.rxCount.Add(1)
		return 0, nil
	}

	for !gs.stop.Load() {
		if _, err := ts.ring.RXRingNext(count, receiverPollTimeoutMs); err != nil {
			return err
		}
	}
	return nil
}
