package stats

import (
	"fmt"
	"time"
)

// Clock returns the current time in milliseconds.
// Successive calls within a process must never decrease.
type Clock func() float64

// Clock source names.
const (
	ClockMonotonic = "monotonic"
	ClockPosix     = "posix"
	ClockWall      = "wall"
)

// ClockSource describes one candidate time source.
type ClockSource struct {
	// Name identifies the source in configuration
	Name string

	// Available reports whether the source works on this host
	Available func() bool

	// New creates a clock reading from this source
	New func() Clock
}

// ClockSources returns the built-in sources in preference order.
func ClockSources() []ClockSource {
	return []ClockSource{
		{
			Name:      ClockMonotonic,
			Available: func() bool { return true },
			New:       newMonotonicClock,
		},
		{
			Name:      ClockPosix,
			Available: posixClockAvailable,
			New:       func() Clock { return posixClock },
		},
		{
			Name:      ClockWall,
			Available: func() bool { return true },
			New:       func() Clock { return wallClock },
		},
	}
}

// SelectClock returns a clock from the first available source along with
// its name. With no usable source it falls back to the wall clock.
func SelectClock(sources ...ClockSource) (Clock, string) {
	for _, src := range sources {
		if src.Available != nil && src.Available() && src.New != nil {
			return src.New(), src.Name
		}
	}
	return wallClock, ClockWall
}

// DefaultClock returns the preferred clock for this host.
func DefaultClock() Clock {
	clock, _ := SelectClock(ClockSources()...)
	return clock
}

// ClockByName returns the named built-in clock.
// An empty name selects the default clock.
func ClockByName(name string) (Clock, error) {
	if name == "" {
		return DefaultClock(), nil
	}
	for _, src := range ClockSources() {
		if src.Name != name {
			continue
		}
		if !src.Available() {
			return nil, fmt.Errorf("clock %q is not available on this platform", name)
		}
		return src.New(), nil
	}
	return nil, fmt.Errorf("unknown clock %q", name)
}

// newMonotonicClock reads the runtime's monotonic clock relative to the
// moment the clock was created.
func newMonotonicClock() Clock {
	origin := time.Now()
	return func() float64 {
		return float64(time.Since(origin)) / float64(time.Millisecond)
	}
}

func wallClock() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
