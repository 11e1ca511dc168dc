//go:build unix

package stats

import (
	"golang.org/x/sys/unix"
)

func posixClockAvailable() bool {
	var ts unix.Timespec
	return unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts) == nil
}

// posixClock reads CLOCK_MONOTONIC directly.
func posixClock() float64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return wallClock()
	}
	return float64(ts.Sec)*1e3 + float64(ts.Nsec)/1e6
}
