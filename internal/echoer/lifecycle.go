package echoer

import (
	"context"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/joshuafuller/dnsgen/internal/errs"
	"github.com/joshuafuller/dnsgen/internal/packetsocket"
	"github.com/joshuafuller/dnsgen/internal/telemetry"
)

// Run opens Config.ThreadCount AF_PACKET sockets on Ifname, one per
// logical CPU, enables an RX ring on each, pins its worker to that CPU,
// and reflects packets until ctx is canceled (spec.md §4.7/§5).
func Run(ctx context.Context, cfg Config, log *telemetry.Logger) error {
	iface, err := net.InterfaceByName(cfg.Ifname)
	if err != nil {
		return &errs.System{Op: "if_nametoindex", Err: err}
	}

	group, gctx := errgroup.WithContext(ctx)

	for i := 0; i < cfg.ThreadCount; i++ {
		cpu := i
		sock, err := packetsocket.Open()
		if err != nil {
			return err
		}
		if err := sock.BindIndex(iface.Index); err != nil {
			return err
		}

		group.Go(func() error {
			if err := packetsocket.PinCurrentThreadToCPU(cpu); err != nil {
				log.Warn("sched_setaffinity failed, continuing unpinned", "cpu", cpu, "err", err)
			}
			if err := sock.EnableRXRing(rxFrameBits, rxFrameCount); err != nil {
				return err
			}
			log.Info("echo worker ready", "thread", cpu, "port", cfg.Port)
			defer func() { _ = sock.Close() }()
			return Worker(gctx, sock, cfg.Port)
		})
	}

	return group.Wait()
}
