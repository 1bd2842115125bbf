//go:build !linux

package hclock

import "github.com/joshuafuller/dnsgen/internal/errs"

// Now is unavailable outside Linux: dnsgen's pacing depends on
// CLOCK_MONOTONIC plus clock_nanosleep(ABSTIME), which golang.org/x/sys/unix
// only exposes on Linux.
func Now() (Time, error) {
	return Time{}, &errs.System{Op: "clock_gettime", Err: errs.ErrUnsupportedPlatform}
}

// SleepAbs is unavailable outside Linux; see Now.
func SleepAbs(Time) error {
	return &errs.System{Op: "clock_nanosleep", Err: errs.ErrUnsupportedPlatform}
}
