package packetsocket

import (
	"errors"
	"sync"
)

// errSendLimitReached is returned by FakeSender.SendBatch once FailAfter
// datagrams have been accepted.
var errSendLimitReached = errors.New("packetsocket: fake sender limit reached")

// RingSource is a test double for RXRing: a queue of pre-loaded frames
// that RXRingNext hands out in order, with Remaining reporting how many are
// left. It lets internal/generator and internal/echoer be tested without a
// real AF_PACKET socket.
type RingSource struct {
	mu     sync.Mutex
	frames []queuedFrame
	pos    int
}

type queuedFrame struct {
	buf  []byte
	addr LinkAddr
}

// NewRingSource returns an empty RingSource.
func NewRingSource() *RingSource {
	return &RingSource{}
}

// Push enqueues a frame to be returned by a future RXRingNext call.
func (r *RingSource) Push(buf []byte, addr LinkAddr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, queuedFrame{buf: append([]byte(nil), buf...), addr: addr})
}

// RXRingNext satisfies RXRing. With no frame queued it reports (false, nil)
// without blocking, regardless of timeoutMs.
func (r *RingSource) RXRingNext(cb RXCallback, _ int) (bool, error) {
	r.mu.Lock()
	if r.pos >= len(r.frames) {
		r.mu.Unlock()
		return false, nil
	}
	f := r.frames[r.pos]
	r.pos++
	r.mu.Unlock()

	_, err := cb(f.buf, f.addr)
	return true, err
}

// Remaining reports how many queued frames have not yet been consumed.
func (r *RingSource) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames) - r.pos
}

// SentDatagram records one SendBatch element for FakeSender verification.
type SentDatagram struct {
	Dest    LinkAddr
	DestHW  [6]byte
	Header  []byte
	Payload []byte
}

// FakeSender is a test double for Sender: it records every datagram passed
// to SendBatch instead of transmitting it.
type FakeSender struct {
	mu   sync.Mutex
	sent []SentDatagram
	// FailAfter, if non-negative, makes SendBatch accept only that many
	// more datagrams (cumulative across calls) before returning an error,
	// to exercise partial-batch handling in callers.
	FailAfter int
}

// NewFakeSender returns a FakeSender with no send limit.
func NewFakeSender() *FakeSender {
	return &FakeSender{FailAfter: -1}
}

// SendBatch satisfies Sender.
func (f *FakeSender) SendBatch(dest LinkAddr, destHW [6]byte, headers, payloads [][]byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accepted := len(headers)
	if f.FailAfter >= 0 {
		remaining := f.FailAfter - len(f.sent)
		if remaining < 0 {
			remaining = 0
		}
		if accepted > remaining {
			accepted = remaining
		}
	}

	for i := 0; i < accepted; i++ {
		f.sent = append(f.sent, SentDatagram{
			Dest:    dest,
			DestHW:  destHW,
			Header:  append([]byte(nil), headers[i]...),
			Payload: append([]byte(nil), payloads[i]...),
		})
	}

	if accepted < len(headers) {
		return accepted, errSendLimitReached
	}
	return accepted, nil
}

// Sent returns a copy of every datagram accepted so far.
func (f *FakeSender) Sent() []SentDatagram {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentDatagram, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentReply records one EchoSocket.SendTo call.
type SentReply struct {
	Buf  []byte
	Dest LinkAddr
}

// EchoSocket is a test double for Replier: it combines RingSource's
// frame queue with a recorder for SendTo, so the echo responder's
// reflect-in-place logic can be tested without a real socket.
type EchoSocket struct {
	*RingSource

	mu      sync.Mutex
	replies []SentReply
}

// NewEchoSocket returns an empty EchoSocket.
func NewEchoSocket() *EchoSocket {
	return &EchoSocket{RingSource: NewRingSource()}
}

// SendTo satisfies Replier.
func (e *EchoSocket) SendTo(buf []byte, dest LinkAddr) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replies = append(e.replies, SentReply{Buf: append([]byte(nil), buf...), Dest: dest})
	return len(buf), nil
}

// Replies returns a copy of every reply sent so far.
func (e *EchoSocket) Replies() []SentReply {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]SentReply, len(e.replies))
	copy(out, e.replies)
	return out
}
