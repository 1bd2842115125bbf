package generator

import (
	"context"

	"github.com/joshuafuller/dnsgen/internal/hclock"
	"github.com/joshuafuller/dnsgen/internal/packetsocket"
)

// runSender is one sender worker's entire lifetime: wait for the start
// signal, then repeatedly build and transmit a batch, pacing against the
// shared rate with a PLL-style absolute-sleep correction (spec.md §4.4).
func runSender(ctx context.Context, gs *sharedState, ts *threadState, startCh <-chan struct{}, destAddr packetsocket.LinkAddr) error {
	select {
	case <-startCh:
	case <-ctx.Done():
		return ctx.Err()
	}

	now, err := hclock.Now()
	if err != nil {
		return err
	}
	var pacingError int64

	for !gs.stop.Load() {
		slab, headers, payloads := buildBatch(gs, ts, destAddr)

		sent, err := ts.socket.SendBatch(destAddr, gs.destMAC, headers, payloads)
		putHeaderSlab(gs.batchSize, slab)
		if err != nil {
			return err
		}

		ts.txCount += uint64(sent)
		gs.txCount.Add(uint32(sent))

		rate := gs.rate.Load()
		if rate == 0 {
			rate = 1
		}
		deltaNs := int64(1e9) * int64(gs.batchSize) * int64(gs.threadCount) / int64(rate)

		next := now.Add(deltaNs - pacingError)
		if err := hclock.SleepAbs(next); err != nil {
			return err
		}
		now, err = hclock.Now()
		if err != nil {
			return err
		}
		pacingError = now.Sub(next)
	}

	return nil
}

// buildBatch constructs gs.batchSize independent header+payload pairs,
// advancing ts's query cursor, IP ID counter, and source port for each one
// (spec.md §4.4). Headers are views into a single pooled slab; the caller
// must return it via putHeaderSlab once the batch has been transmitted.
func buildBatch(gs *sharedState, ts *threadState, destAddr packetsocket.LinkAddr) (slab []byte, headers, payloads [][]byte) {
	slab = getHeaderSlab(gs.batchSize)
	headers = make([][]byte, gs.batchSize)
	payloads = make([][]byte, gs.batchSize)

	for i := 0; i < gs.batchSize; i++ {
		rec := gs.queryFile.At(ts.queryCur)
		ts.queryCur = nextQueryCursor(ts.queryCur, gs.threadCount, gs.queryCount)

		payload := rec.Bytes()
		srcPort := ts.portBase + ts.portOffset
		ts.portOffset = (ts.portOffset + 1) % ts.portCount

		h := slab[i*headerLen : (i+1)*headerLen]
		buildHeader(h, gs.srcIP, gs.destIP, srcPort, gs.destPort, ts.ipIDCount, len(payload))
		ts.ipIDCount++

		headers[i] = h
		payloads[i] = payload
	}

	return slab, headers, payloads
}
