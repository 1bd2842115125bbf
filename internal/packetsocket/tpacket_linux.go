//go:build linux

package packetsocket

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// The tpacket* types below mirror the kernel ABI defined in
// linux/if_packet.h. golang.org/x/sys/unix does not expose a stable,
// cross-version wrapper for PACKET_RX_RING's tpacket_req/tpacket_hdr pair,
// so dnsgen defines them directly against the kernel header layout, the
// same approach raw-AF_PACKET libraries in the Go ecosystem (e.g.
// google/gopacket's afpacket package) take.
const tpacketAlignment = 16

func tpacketAlign(x int) int {
	return (x + tpacketAlignment - 1) &^ (tpacketAlignment - 1)
}

// tpacketReq mirrors struct tpacket_req, the PACKET_RX_RING setsockopt
// argument.
type tpacketReq struct {
	blockSize uint32
	blockNr   uint32
	frameSize uint32
	frameNr   uint32
}

// tpacketHdr mirrors struct tpacket_hdr (TPACKET_V1), the per-frame header
// the kernel writes at the start of every ring slot. tp_status is declared
// "unsigned long" in the kernel header, which is 8 bytes on the 64-bit
// architectures this package targets.
type tpacketHdr struct {
	status  uint64
	len     uint32
	snaplen uint32
	mac     uint16
	net     uint16
	sec     uint32
	usec    uint32
}

var sizeofTpacketHdr = int(unsafe.Sizeof(tpacketHdr{}))

// Frame status values from linux/if_packet.h.
const (
	tpStatusKernel uint64 = 0
	tpStatusUser   uint64 = 1 << 0
)

// mmsghdr mirrors struct mmsghdr from linux/socket.h, the per-datagram
// element of a sendmmsg(2) batch. unix.Msghdr is generated per architecture
// by golang.org/x/sys/unix, so embedding it (rather than hand-rolling the
// msghdr layout too) keeps this struct's field layout correct across
// architectures; only msg_len is kernel-batch-specific and added here.
type mmsghdr struct {
	hdr unix.Msghdr
	len uint32
}
