// Package packetsocket wraps a Linux AF_PACKET socket: open/bind, per-CPU
// fanout, a memory-mapped PACKET_RX_RING frame iterator, and batched
// transmission via sendmmsg(2). It is the raw-socket layer spec.md §4.3
// describes; internal/generator and internal/echoer build the query
// pipeline and the echo loop on top of it.
package packetsocket

// LinkAddr is a trimmed, platform-independent stand-in for sockaddr_ll: the
// layer-2 source or destination address associated with a received or sent
// frame.
type LinkAddr struct {
	Ifindex  int
	Protocol uint16
	Halen    int
	Addr     [8]byte
}

// RXCallback processes one frame taken off the RX ring. Its return value is
// for the caller's own bookkeeping (e.g. bytes echoed); packetsocket does
// not interpret it.
type RXCallback func(buf []byte, addr LinkAddr) (int, error)

// RXRing is the subset of Socket's behavior the generator's receive loop
// and the echo responder depend on. The real Linux Socket satisfies it;
// mock.RingSource satisfies it in tests run on any platform.
type RXRing interface {
	RXRingNext(cb RXCallback, timeoutMs int) (bool, error)
}

// Sender is the subset of Socket's behavior the generator's transmit loop
// depends on.
type Sender interface {
	SendBatch(dest LinkAddr, destHW [6]byte, headers, payloads [][]byte) (int, error)
}

// Replier is the subset of Socket's behavior the echo responder depends
// on: draining the RX ring and sending a single reply back to the frame's
// source address.
type Replier interface {
	RXRing
	SendTo(buf []byte, dest LinkAddr) (int, error)
}
