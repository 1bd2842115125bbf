// Command dnsgen is a high-rate DNS load generator: it crafts UDP/IPv4 DNS
// query packets at layer 2 via AF_PACKET, transmits them in batched
// sendmmsg calls, counts replies via a memory-mapped RX ring, and adapts
// the send rate toward what the target server can sustain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuafuller/dnsgen/internal/errs"
	"github.com/joshuafuller/dnsgen/internal/generator"
	"github.com/joshuafuller/dnsgen/internal/query"
	"github.com/joshuafuller/dnsgen/internal/telemetry"
)

const usageText = `dnsgen -i <ifname> -a <local_addr>
       -s <server_addr> [-p <port>] -m <server_mac_addr>
      [-T <threads>] [-l <timelimit>] -d <datafile>
      [-b <batchsize>] [-r <rate_start>] [-R <rate_increment>]
  -i the network interface to use
  -a the local address from which to send queries
  -s the server to query
  -p the port on which to query the server (default: 8053)
  -m the MAC address of the server to query
  -T the number of threads to run (default: ncpus)
  -l run for at most this many seconds
  -d the input text query file
  -D the input raw query file (mutually exclusive with -d)
  -b packet batch size
  -r initial packet rate
  -R packet rate increment
  -M disable rate adaption
  -U EDNS UDP buffer size
  -X enable DNSSEC (sets the DO bit)
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
	cfg := generator.DefaultConfig()

	var ifname, localAddr, serverAddr, serverMAC, textFile, rawFile string
	var port, edns uint
	var doBit bool

	flag.StringVar(&ifname, "i", "", "network interface")
	flag.StringVar(&localAddr, "a", "", "local IPv4 address")
	flag.StringVar(&serverAddr, "s", "", "server IPv4 address")
	flag.StringVar(&serverMAC, "m", "", "server MAC address")
	flag.StringVar(&textFile, "d", "", "text query file")
	flag.StringVar(&rawFile, "D", "", "raw query file")
	flag.UintVar(&port, "p", 8053, "destination port")
	flag.IntVar(&cfg.ThreadCount, "T", cfg.ThreadCount, "thread count")
	flag.IntVar(&cfg.RuntimeSeconds, "l", cfg.RuntimeSeconds, "runtime seconds")
	flag.IntVar(&cfg.BatchSize, "b", cfg.BatchSize, "batch size")
	var startRate, rateIncrement uint
	flag.UintVar(&startRate, "r", uint(cfg.StartRate), "starting rate")
	flag.UintVar(&rateIncrement, "R", uint(cfg.RateIncrement), "rate increment")
	flag.BoolVar(&cfg.RampMode, "M", false, "disable rate adaption (ramp mode)")
	flag.UintVar(&edns, "U", 0, "EDNS UDP buffer size")
	flag.BoolVar(&doBit, "X", false, "set the DNSSEC DO bit")
	flag.BoolVar(&cfg.Verbose, "v", false, "verbose diagnostic logging")
	flag.Parse()

	cfg.Ifname = ifname
	cfg.LocalIP = net.ParseIP(localAddr)
	cfg.ServerIP = net.ParseIP(serverAddr)
	if mac, err := net.ParseMAC(serverMAC); err == nil {
		cfg.ServerMAC = mac
	}
	cfg.TextQueryFile = textFile
	cfg.RawQueryFile = rawFile
	cfg.DestPort = uint16(port)
	cfg.StartRate = uint32(startRate)
	cfg.RateIncrement = uint32(rateIncrement)
	if edns > 0 {
		cfg.EDNSEnabled = true
		cfg.EDNSBufsize = uint16(edns)
	}
	cfg.DOBit = doBit

	if err := cfg.Validate(); err != nil {
		return err
	}

	qf := query.NewFile()
	if cfg.TextQueryFile != "" {
		if err := qf.ReadTxt(cfg.TextQueryFile); err != nil {
			return err
		}
	} else {
		if err := qf.ReadRaw(cfg.RawQueryFile); err != nil {
			return err
		}
	}

	if cfg.EDNSEnabled || cfg.DOBit {
		var flags uint16
		if cfg.DOBit {
			flags = 1 << 15
		}
		if err := qf.EDNS(cfg.EDNSBufsize, flags); err != nil {
			return err
		}
	}

	log := telemetry.New(os.Stderr, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return generator.Run(ctx, cfg, qf, os.Stdout, log)
}
