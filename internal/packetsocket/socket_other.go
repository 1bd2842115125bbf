//go:build !linux

package packetsocket

import "github.com/joshuafuller/dnsgen/internal/errs"

// Socket is a non-functional stand-in on platforms without AF_PACKET.
// dnsgen's raw-socket pipeline is Linux-only, per spec.md §4.3; every
// method reports errs.ErrUnsupportedPlatform so callers get a clear error
// instead of a build failure when cross-compiling.
type Socket struct{}

// Open always fails outside Linux.
func Open() (*Socket, error) {
	return nil, &errs.System{Op: "socket(AF_PACKET)", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) Fd() int { return -1 }

func (s *Socket) Close() error { return nil }

func (s *Socket) BindIndex(int) error {
	return &errs.System{Op: "bind(AF_PACKET)", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) BindName(string) error {
	return &errs.System{Op: "bind(AF_PACKET)", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) Poll(int) (int, error) {
	return 0, &errs.System{Op: "poll", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) SetOpt(int, uint32) error {
	return &errs.System{Op: "setsockopt", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) GetOpt(int) (uint32, error) {
	return 0, &errs.System{Op: "getsockopt", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) EnableRXRing(uint, uint32) error {
	return &errs.System{Op: "setsockopt(PACKET_RX_RING)", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) RXRingNext(RXCallback, int) (bool, error) {
	return false, &errs.System{Op: "PACKET_RX_RING read", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) SendBatch(LinkAddr, [6]byte, [][]byte, [][]byte) (int, error) {
	return 0, &errs.System{Op: "sendmmsg", Err: errs.ErrUnsupportedPlatform}
}

func (s *Socket) SendTo([]byte, LinkAddr) (int, error) {
	return 0, &errs.System{Op: "sendto", Err: errs.ErrUnsupportedPlatform}
}
