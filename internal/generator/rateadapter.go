package generator

import (
	"context"
	"fmt"
	"io"

	"github.com/joshuafuller/dnsgen/internal/hclock"
)

const (
	rateAdapterPeriodNs = 100_000_000
	rateWindowSize      = 20
)

// rxWindow is a fixed-capacity rolling window of rx_count samples, used by
// the rate adapter's 20-sample moving average (spec.md §4.6).
type rxWindow struct {
	samples []uint32
}

func (w *rxWindow) push(v uint32) {
	w.samples = append(w.samples, v)
	if len(w.samples) > rateWindowSize {
		w.samples = w.samples[1:]
	}
}

func (w *rxWindow) average() uint32 {
	if len(w.samples) == 0 {
		return 0
	}
	var sum uint64
	for _, s := range w.samples {
		sum += uint64(s)
	}
	return uint32(sum / uint64(len(w.samples)))
}

func (w *rxWindow) full() bool { return len(w.samples) == rateWindowSize }

// runRateAdapter ticks every 100ms, re-targeting gs.rate from the recent
// receive rate (or, in ramp mode, ignoring feedback entirely), and writes
// one stats line per tick to statsOut, per spec.md §4.6.
func runRateAdapter(ctx context.Context, gs *sharedState, startCh <-chan struct{}, statsOut io.Writer) error {
	select {
	case <-startCh:
	case <-ctx.Done():
		return ctx.Err()
	}

	var window rxWindow
	var rxMax, rptMax uint32

	next, err := hclock.Now()
	if err != nil {
		return err
	}

	for {
		next = next.Add(rateAdapterPeriodNs)
		if err := hclock.SleepAbs(next); err != nil {
			return err
		}

		window.push(gs.rxCount.Load())
		rxAverage := window.average()
		rxRate := uint32(uint64(1e9) * uint64(rxAverage) / rateAdapterPeriodNs)

		if rxRate > rxMax {
			rxMax = rxRate
		}
		if window.full() && rxRate > rptMax {
			rptMax = rxRate
		}

		txCount := gs.txCount.Load()
		rxCount := gs.rxCount.Load()
		fmt.Fprintf(statsOut, "%d.%09d %d %d %d %d\n", next.Sec, next.Nsec, gs.rate.Load(), rxRate, txCount, rxCount)

		if gs.rampMode {
			gs.rate.Add(gs.increment)
		} else {
			target := 0.5*(float64(rxRate)+float64(rxMax)) + float64(gs.increment)
			gs.rate.Store(uint32(target))
		}

		gs.rxCount.Store(0)
		gs.txCount.Store(0)

		if gs.stop.Load() {
			break
		}
	}

	fmt.Fprintf(statsOut, "Peak RX rate = %d\n", rptMax)
	return nil
}
