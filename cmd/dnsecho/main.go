// Command dnsecho reflects DNS query packets back to their sender by
// swapping IP/UDP address and port fields in place, over the same
// AF_PACKET RX ring machinery dnsgen uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joshuafuller/dnsgen/internal/echoer"
	"github.com/joshuafuller/dnsgen/internal/errs"
	"github.com/joshuafuller/dnsgen/internal/telemetry"
)

const usageText = `dnsecho -i <ifname> [-p <port>] [-T <threads>] [-v]
  -i the network interface to listen on (required)
  -p the port to answer on (default: 8053)
  -T the number of worker threads (default: ncpus)
  -v verbose diagnostic logging
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var cfgErr *errs.Config
		if errors.As(err, &cfgErr) {
			fmt.Fprint(os.Stderr, usageText)
		}
		os.Exit(1)
	}
}

func run() error {
	var cfg echoer.Config
	cfg.Port = 8053
	cfg.ThreadCount = runtime.NumCPU()

	flag.StringVar(&cfg.Ifname, "i", "", "network interface")
	var port uint
	flag.UintVar(&port, "p", 8053, "port to answer on")
	flag.IntVar(&cfg.ThreadCount, "T", cfg.ThreadCount, "worker thread count")
	flag.BoolVar(&cfg.Verbose, "v", false, "verbose diagnostic logging")
	flag.Parse()

	cfg.Port = uint16(port)

	if cfg.Ifname == "" {
		return &errs.Config{Message: "interface name (-i) is required"}
	}
	if cfg.ThreadCount <= 0 {
		return &errs.Config{Message: "thread count must be positive"}
	}

	log := telemetry.New(os.Stderr, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := echoer.Run(ctx, cfg, log)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
