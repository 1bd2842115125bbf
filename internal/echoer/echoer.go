// Package echoer implements the echo responder: it reflects DNS query
// packets back to their sender by swapping IP/UDP address and port fields
// in place, without parsing or recomputing checksums (spec.md §4.7).
package echoer

import (
	"context"
	"encoding/binary"

	"github.com/joshuafuller/dnsgen/internal/packetsocket"
)

// Config holds one echo worker's startup parameters.
type Config struct {
	Ifname      string
	Port        uint16
	ThreadCount int
	Verbose     bool
}

const (
	rxFrameBits  = 9 // 512-byte frames
	rxFrameCount = 4096
	pollTimeout  = -1
)

// Worker drains one Replier's RX ring until ctx is canceled, reflecting
// every query destined for Port and silently dropping everything else.
func Worker(ctx context.Context, sock packetsocket.Replier, port uint16) error {
	cb := func(buf []byte, addr packetsocket.LinkAddr) (int, error) {
		return doEcho(sock, buf, addr, port)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := sock.RXRingNext(cb, pollTimeout); err != nil {
			return err
		}
	}
}

// doEcho implements spec.md §4.7 step by step: locate the UDP header past
// the IPv4 header's variable length, drop anything not addressed to port,
// swap the source/destination IP and port fields, and send the frame back
// out verbatim. Checksums are intentionally left untouched: swapping two
// 16-bit words inside a one's-complement sum leaves the sum unchanged.
func doEcho(sock packetsocket.Replier, buf []byte, addr packetsocket.LinkAddr, port uint16) (int, error) {
	if len(buf) < 20 {
		return 0, nil
	}
	ihl := int(buf[0]&0x0f) * 4
	if len(buf) < ihl+8 {
		return 0, nil
	}
	udp := buf[ihl:]

	if binary.BigEndian.Uint16(udp[2:4]) != port {
		return 0, nil
	}

	swap4(buf[12:16], buf[16:20])   // ip.saddr <-> ip.daddr
	swap2(udp[0:2], udp[2:4])       // udp.source <-> udp.dest

	return sock.SendTo(buf, addr)
}

func swap2(a, b []byte) {
	a[0], b[0] = b[0], a[0]
	a[1], b[1] = b[1], a[1]
}

func swap4(a, b []byte) {
	for i := 0; i < 4; i++ {
		a[i], b[i] = b[i], a[i]
	}
}
