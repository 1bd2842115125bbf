//go:build linux

package hclock

import (
	"golang.org/x/sys/unix"
)

// Now returns the current value of CLOCK_MONOTONIC.
func Now() (Time, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return Time{}, err
	}
	return Time{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}, nil
}

// SleepAbs blocks until the monotonic clock reaches t, retrying
// transparently on EINTR per spec.md §7's retry policy.
func SleepAbs(t Time) error {
	ts := unix.Timespec{Sec: t.Sec, Nsec: t.Nsec}
	for {
		err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, unix.TIMER_ABSTIME, &ts, nil)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}
