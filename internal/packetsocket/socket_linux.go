//go:build linux

package packetsocket

import (
	"net"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuafuller/dnsgen/internal/errs"
)

// Socket is an owned AF_PACKET socket, optionally backed by a memory-mapped
// PACKET_RX_RING. The zero value is not usable; construct with Open.
type Socket struct {
	fd      int
	pollFd  []unix.PollFd
	ring    []byte
	req     tpacketReq
	current uint32
	netOff  int
}

// Open creates an AF_PACKET/SOCK_DGRAM/ETH_P_IP socket, per spec.md §4.3.
// SOCK_DGRAM strips the link-layer header on receive and synthesizes it on
// send, which is why the wire code never builds an Ethernet header.
func Open() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_DGRAM, int(htons(unix.ETH_P_IP)))
	if err != nil {
		return nil, &errs.System{Op: "socket(AF_PACKET, SOCK_DGRAM)", Err: err}
	}
	return &Socket{
		fd:     fd,
		pollFd: []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}},
	}, nil
}

// Fd returns the underlying file descriptor.
func (s *Socket) Fd() int { return s.fd }

// Close releases the ring mapping, if any, and closes the socket. It is
// safe to call more than once.
func (s *Socket) Close() error {
	if s.ring != nil {
		_ = unix.Munmap(s.ring)
		s.ring = nil
	}
	if s.fd < 0 {
		return nil
	}
	fd := s.fd
	s.fd = -1
	if err := unix.Close(fd); err != nil {
		return &errs.System{Op: "close", Err: err}
	}
	return nil
}

// BindIndex binds the socket to an interface and installs PACKET_FANOUT_CPU
// fanout, so that multiple threads sharing one fanout group each receive
// only the traffic their own CPU's ring steers to them (spec.md §4.3).
func (s *Socket) BindIndex(ifindex int) error {
	addr := &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_IP),
		Ifindex:  ifindex,
	}
	if err := unix.Bind(s.fd, addr); err != nil {
		return &errs.System{Op: "bind(AF_PACKET)", Err: err}
	}

	fanout := (os.Getpid() & 0xffff) | (unix.PACKET_FANOUT_CPU << 16)
	if err := unix.SetsockoptInt(s.fd, unix.SOL_PACKET, unix.PACKET_FANOUT, fanout); err != nil {
		return &errs.System{Op: "setsockopt(PACKET_FANOUT)", Err: err}
	}
	return nil
}

// BindName resolves ifname to an interface index and delegates to BindIndex.
func (s *Socket) BindName(ifname string) error {
	iface, err := net.InterfaceByName(ifname)
	if err != nil {
		return &errs.System{Op: "if_nametoindex", Err: err}
	}
	return s.BindIndex(iface.Index)
}

// Poll waits up to timeoutMs milliseconds for the socket to become
// readable, retrying transparently on EINTR (spec.md §7). timeoutMs < 0
// blocks indefinitely.
func (s *Socket) Poll(timeoutMs int) (int, error) {
	for {
		n, err := unix.Poll(s.pollFd, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, &errs.System{Op: "poll", Err: err}
		}
		return n, nil
	}
}

// SetOpt sets a 32-bit SOL_PACKET socket option.
func (s *Socket) SetOpt(name int, val uint32) error {
	if err := unix.SetsockoptInt(s.fd, unix.SOL_PACKET, name, int(val)); err != nil {
		return &errs.System{Op: "setsockopt", Err: err}
	}
	return nil
}

// GetOpt reads a 32-bit SOL_PACKET socket option.
func (s *Socket) GetOpt(name int) (uint32, error) {
	v, err := unix.GetsockoptInt(s.fd, unix.SOL_PACKET, name)
	if err != nil {
		return 0, &errs.System{Op: "getsockopt", Err: err}
	}
	return uint32(v), nil
}

// EnableRXRing configures and maps a PACKET_RX_RING of frameCount frames of
// 1<<frameBits bytes each, per spec.md §4.3. Block size is the larger of
// the page size and the frame size, so a single block never splits a
// frame across a page boundary.
func (s *Socket) EnableRXRing(frameBits uint, frameCount uint32) error {
	frameSize := uint32(1) << frameBits
	mapSize := frameSize * frameCount

	blockSize := frameSize
	if page := uint32(os.Getpagesize()); page > blockSize {
		blockSize = page
	}

	req := tpacketReq{
		blockSize: blockSize,
		blockNr:   mapSize / blockSize,
		frameSize: frameSize,
		frameNr:   frameCount,
	}

	if _, _, errno := unix.Syscall6(unix.SYS_SETSOCKOPT,
		uintptr(s.fd), uintptr(unix.SOL_PACKET), uintptr(unix.PACKET_RX_RING),
		uintptr(unsafe.Pointer(&req)), unsafe.Sizeof(req), 0); errno != 0 {
		return &errs.System{Op: "setsockopt(PACKET_RX_RING)", Err: errno}
	}

	ring, err := unix.Mmap(s.fd, 0, int(mapSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_LOCKED)
	if err != nil {
		return &errs.System{Op: "mmap", Err: err}
	}

	s.ring = ring
	s.req = req
	s.netOff = tpacketAlign(sizeofTpacketHdr)
	s.current = 0
	return nil
}

func (s *Socket) frame(i uint32) []byte {
	off := int(i) * int(s.req.frameSize)
	return s.ring[off : off+int(s.req.frameSize)]
}

// RXRingNext inspects the frame at the ring's current cursor. If the
// kernel has not yet filled it, RXRingNext polls up to timeoutMs and
// returns (false, nil) without advancing. Otherwise it hands the frame's
// payload and source address to cb, releases the frame back to the kernel,
// advances the cursor modulo the frame count, and returns (true, cb's
// error).
func (s *Socket) RXRingNext(cb RXCallback, timeoutMs int) (bool, error) {
	f := s.frame(s.current)
	hdr := (*tpacketHdr)(unsafe.Pointer(&f[0]))

	if atomic.LoadUint64(&hdr.status)&tpStatusUser == 0 {
		if _, err := s.Poll(timeoutMs); err != nil {
			return false, err
		}
		return false, nil
	}

	var addr LinkAddr
	raw := (*unix.RawSockaddrLinklayer)(unsafe.Pointer(&f[s.netOff]))
	addr.Ifindex = int(raw.Ifindex)
	addr.Protocol = htons(raw.Protocol)
	addr.Halen = int(raw.Halen)
	copy(addr.Addr[:], raw.Addr[:])

	start := int(hdr.net)
	payload := f[start : start+int(hdr.len)]

	_, cbErr := cb(payload, addr)

	atomic.StoreUint64(&hdr.status, tpStatusKernel)
	s.current = (s.current + 1) % s.req.frameNr

	return true, cbErr
}

// SendBatch transmits len(headers) datagrams (header[i] immediately
// followed on the wire by payloads[i]) to dest/destHW in as few
// sendmmsg(2) calls as possible, per spec.md §4.4. It retries the
// remainder of the batch on a short send and returns the number of
// datagrams the kernel accepted.
func (s *Socket) SendBatch(dest LinkAddr, destHW [6]byte, headers, payloads [][]byte) (int, error) {
	n := len(headers)
	if n == 0 {
		return 0, nil
	}

	var sa unix.RawSockaddrLinklayer
	sa.Family = unix.AF_PACKET
	sa.Protocol = htons(unix.ETH_P_IP)
	sa.Ifindex = int32(dest.Ifindex)
	sa.Halen = 6
	copy(sa.Addr[:6], destHW[:])

	msgs := make([]mmsghdr, n)
	iovecs := make([]unix.Iovec, n*2)

	for i := 0; i < n; i++ {
		iovecs[i*2].Base = &headers[i][0]
		iovecs[i*2].SetLen(len(headers[i]))
		iovecs[i*2+1].Base = &payloads[i][0]
		iovecs[i*2+1].SetLen(len(payloads[i]))

		msgs[i].hdr.Name = (*byte)(unsafe.Pointer(&sa))
		msgs[i].hdr.Namelen = uint32(unsafe.Sizeof(sa))
		msgs[i].hdr.Iov = &iovecs[i*2]
		msgs[i].hdr.SetIovlen(2)
	}

	sent := 0
	for sent < n {
		r, _, errno := unix.Syscall6(unix.SYS_SENDMMSG,
			uintptr(s.fd), uintptr(unsafe.Pointer(&msgs[sent])), uintptr(n-sent), 0, 0, 0)
		if errno != 0 {
			if errno == unix.EAGAIN || errno == unix.EWOULDBLOCK {
				continue
			}
			return sent, &errs.System{Op: "sendmmsg", Err: errno}
		}
		if r == 0 {
			continue
		}
		sent += int(r)
	}

	return sent, nil
}

// SendTo transmits a single datagram to dest with MSG_DONTWAIT, per
// spec.md §4.7's echo responder contract. EAGAIN/EWOULDBLOCK is treated as
// a silent drop rather than an error.
func (s *Socket) SendTo(buf []byte, dest LinkAddr) (int, error) {
	sa := &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_IP),
		Ifindex:  dest.Ifindex,
		Halen:    uint8(dest.Halen),
	}
	copy(sa.Addr[:], dest.Addr[:])

	if err := unix.Sendto(s.fd, buf, unix.MSG_DONTWAIT, sa); err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, &errs.System{Op: "sendto", Err: err}
	}
	return len(buf), nil
}

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
