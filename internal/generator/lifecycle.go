package generator

import (
	"context"
	"io"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuafuller/dnsgen/internal/errs"
	"github.com/joshuafuller/dnsgen/internal/hclock"
	"github.com/joshuafuller/dnsgen/internal/packetsocket"
	"github.com/joshuafuller/dnsgen/internal/query"
	"github.com/joshuafuller/dnsgen/internal/telemetry"
)

const rxFrameBits = 11 // 2048-byte frames
const rxFrameCount = 1024

// Run drives the full generator lifecycle: per-thread socket setup, the
// start barrier, sender/receiver/rate-adapter goroutines, and the lifetime
// timer, per spec.md §5. statsOut receives the rate adapter's stats lines
// (the spec-contracted stdout stream); log receives diagnostic output.
func Run(ctx context.Context, cfg Config, qf *query.File, statsOut io.Writer, log *telemetry.Logger) error {
	iface, err := net.InterfaceByName(cfg.Ifname)
	if err != nil {
		return &errs.System{Op: "if_nametoindex", Err: err}
	}

	gs := &sharedState{
		threadCount:    cfg.ThreadCount,
		batchSize:      cfg.BatchSize,
		ifindex:        iface.Index,
		destPort:       cfg.DestPort,
		queryFile:      qf,
		queryCount:     qf.Len(),
		runtimeSeconds: cfg.RuntimeSeconds,
		increment:      cfg.RateIncrement,
		rampMode:       cfg.RampMode,
	}
	copy(gs.srcIP[:], cfg.LocalIP.To4())
	copy(gs.destIP[:], cfg.ServerIP.To4())
	copy(gs.destMAC[:], cfg.ServerMAC)
	gs.rate.Store(cfg.StartRate)

	destAddr := packetsocket.LinkAddr{Ifindex: iface.Index}

	group, gctx := errgroup.WithContext(ctx)
	startCh := make(chan struct{})

	threads := make([]*threadState, cfg.ThreadCount)
	for i := 0; i < cfg.ThreadCount; i++ {
		sock, err := packetsocket.Open()
		if err != nil {
			return err
		}
		if err := sock.BindIndex(iface.Index); err != nil {
			return err
		}

		ts := &threadState{
			index:     i,
			socket:    sock,
			ring:      sock,
			portCount: 4096,
			portBase:  uint16(16384 + 4096*i),
			queryCur:  i,
		}
		threads[i] = ts

		cpu := i
		group.Go(func() error {
			if err := packetsocket.PinCurrentThreadToCPU(cpu); err != nil {
				log.Warn("sched_setaffinity failed, continuing unpinned", "cpu", cpu, "err", err)
			}
			if err := sock.EnableRXRing(rxFrameBits, rxFrameCount); err != nil {
				return err
			}
			log.Info("receiver ready", "thread", cpu)
			return runReceiver(gs, ts)
		})

		group.Go(func() error {
			log.Info("sender waiting for start", "thread", cpu)
			return runSender(gctx, gs, ts, startCh, destAddr)
		})
	}

	group.Go(func() error {
		return runRateAdapter(gctx, gs, startCh, statsOut)
	})

	group.Go(func() error {
		return runLifeTimer(gctx, gs, startCh, cfg.RuntimeSeconds)
	})

	err = group.Wait()

	for _, ts := range threads {
		if sock, ok := ts.socket.(*packetsocket.Socket); ok {
			_ = sock.Close()
		}
	}

	return err
}

// runLifeTimer implements spec.md §5's start/stop stagger: it sleeps one
// second, closes startCh to release every waiting sender and the rate
// adapter, then waits runtimeSeconds (or until ctx is canceled) before
// setting gs.stop. gs.stop is set on every return path, so a failure
// elsewhere in the group also stops the receivers, senders and rate adapter.
func runLifeTimer(ctx context.Context, gs *sharedState, startCh chan struct{}, runtimeSeconds int) error {
	defer gs.stop.Store(true)

	start, err := hclock.Now()
	if err != nil {
		return err
	}
	start = start.Add(1e9)
	if err := hclock.SleepAbs(start); err != nil {
		return err
	}
	close(startCh)

	wakeup := start.Add(int64(runtimeSeconds) * 1e9)
	now, err := hclock.Now()
	if err != nil {
		return err
	}
	timer := time.NewTimer(time.Duration(wakeup.Sub(now)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return nil
}
