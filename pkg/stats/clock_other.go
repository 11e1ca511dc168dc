//go:build !unix

package stats

func posixClockAvailable() bool {
	return false
}

func posixClock() float64 {
	return wallClock()
}
