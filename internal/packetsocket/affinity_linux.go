//go:build linux

package packetsocket

import (
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/joshuafuller/dnsgen/internal/errs"
)

// PinCurrentThreadToCPU locks the calling goroutine to its current OS
// thread and restricts that thread's scheduling affinity to cpu, per
// spec.md §4.5. Affinity is per-OS-thread, not per-goroutine, so the
// caller must not have already returned control that could let the
// runtime reschedule it elsewhere; callers should invoke this as the
// first statement of a dedicated worker goroutine and never call
// runtime.UnlockOSThread afterward.
func PinCurrentThreadToCPU(cpu int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return &errs.System{Op: "sched_setaffinity", Err: err}
	}
	return nil
}
