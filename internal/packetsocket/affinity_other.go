//go:build !linux

package packetsocket

import "github.com/joshuafuller/dnsgen/internal/errs"

// PinCurrentThreadToCPU is unavailable outside Linux; see the linux
// implementation.
func PinCurrentThreadToCPU(int) error {
	return &errs.System{Op: "sched_setaffinity", Err: errs.ErrUnsupportedPlatform}
}
