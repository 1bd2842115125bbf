// Package generator implements the batched-transmission, receive-counting,
// and rate-adaptation pipeline driving the load generator (spec.md §4.4-4.6).
package generator

import (
	"net"
	"runtime"

	"github.com/joshuafuller/dnsgen/internal/errs"
)

// Config holds the generator's validated startup parameters, resolved from
// CLI flags by cmd/dnsgen before any worker goroutine starts.
type Config struct {
	Ifname    string
	LocalIP   net.IP
	ServerIP  net.IP
	ServerMAC net.HardwareAddr

	TextQueryFile string
	RawQueryFile  string

	DestPort       uint16
	ThreadCount    int
	RuntimeSeconds int
	BatchSize      int
	StartRate      uint32
	RateIncrement  uint32
	RampMode       bool

	EDNSEnabled bool
	EDNSBufsize uint16
	DOBit       bool

	Verbose bool
}

// DefaultConfig returns a Config with spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		DestPort:       8053,
		ThreadCount:    runtime.NumCPU(),
		RuntimeSeconds: 30,
		BatchSize:      32,
		StartRate:      10000,
		RateIncrement:  10000,
	}
}

// Validate reports a configuration error for any missing mandatory field or
// mutually exclusive combination, per spec.md §7.
func (c *Config) Validate() error {
	switch {
	case c.Ifname == "":
		return &errs.Config{Message: "interface name (-i) is required"}
	case c.LocalIP == nil || c.LocalIP.To4() == nil:
		return &errs.Config{Message: "local IPv4 address (-a) is required"}
	case c.ServerIP == nil || c.ServerIP.To4() == nil:
		return &errs.Config{Message: "server IPv4 address (-s) is required"}
	case c.ServerMAC == nil || len(c.ServerMAC) != 6:
		return &errs.Config{Message: "server MAC address (-m) is required"}
	case c.TextQueryFile == "" && c.RawQueryFile == "":
		return &errs.Config{Message: "one of -d (text query file) or -D (raw query file) is required"}
	case c.TextQueryFile != "" && c.RawQueryFile != "":
		return &errs.Config{Message: "-d and -D are mutually exclusive"}
	case c.ThreadCount <= 0:
		return &errs.Config{Message: "thread count must be positive"}
	case c.BatchSize <= 0:
		return &errs.Config{Message: "batch size must be positive"}
	case c.RuntimeSeconds <= 0:
		return &errs.Config{Message: "runtime seconds must be positive"}
	case c.StartRate == 0:
		return &errs.Config{Message: "start rate must be positive"}
	}
	return nil
}
