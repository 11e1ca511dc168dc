package stats

import (
	"math"
)

// DefaultRoundPrecision is the number of decimal places kept in snapshots.
const DefaultRoundPrecision = 3

// WholeNumbers is the RoundPrecision that rounds snapshots to integers.
// A zero RoundPrecision selects DefaultRoundPrecision.
const WholeNumbers = -1

// CounterConfig contains per-counter settings.
type CounterConfig struct {
	// Capacity is the maximum number of retained samples (0 = unbounded)
	Capacity int

	// RoundPrecision is the number of decimals used in snapshots (0 = default of 3, WholeNumbers = 0 decimals)
	RoundPrecision int

	// Percentiles enables all-time HDR histogram tracking
	Percentiles bool
}

// Counter is a named rolling sample series with derived statistics.
//
// Samples are kept in a ring buffer. Mean and deviation are computed over
// the retained window only, while min and max cover every value ever added,
// including values the ring has since evicted.
//
// # Thread Safety
//
// Counter performs no synchronization. Use Locked for shared access.
type Counter struct {
	name     string
	capacity int

	// Ring buffer. While the buffer is filling, head is 0 and
	// len(samples) == count; once full, head is the next write position.
	samples []float64
	head    int
	count   int
	total   int

	// All-time extrema
	min        float64
	max        float64
	hasExtrema bool

	precision   int
	roundFactor float64

	hist *percentileTracker
}

// NewCounter creates an unbounded counter with default precision.
func NewCounter(name string) *Counter {
	return NewCounterWithConfig(name, CounterConfig{})
}

// NewCounterWithConfig creates a counter with custom settings.
func NewCounterWithConfig(name string, config CounterConfig) *Counter {
	precision := config.RoundPrecision
	switch {
	case precision == WholeNumbers:
		precision = 0
	case precision <= 0:
		precision = DefaultRoundPrecision
	}

	c := &Counter{
		name:        name,
		precision:   precision,
		roundFactor: math.Pow(10, float64(precision)),
	}
	if config.Capacity > 0 {
		c.capacity = config.Capacity
		c.samples = make([]float64, 0, config.Capacity)
	}
	if config.Percentiles {
		c.hist = newPercentileTracker(c.roundFactor)
	}
	return c
}

// Name returns the counter name.
func (c *Counter) Name() string {
	return c.name
}

// Capacity returns the maximum number of retained samples (0 = unbounded).
func (c *Counter) Capacity() int {
	return c.capacity
}

// SetCapacity changes the retained window size.
//
// The newest min(Len(), n) samples are kept in chronological order.
// A value <= 0 makes the counter unbounded. All-time extrema and the
// total add count are not affected.
func (c *Counter) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	if n == c.capacity {
		return
	}

	retained := c.Samples()
	if n > 0 && len(retained) > n {
		retained = retained[len(retained)-n:]
	}

	size := len(retained)
	if n > size {
		size = n
	}
	c.samples = make([]float64, len(retained), size)
	copy(c.samples, retained)
	c.head = 0
	c.count = len(retained)
	c.capacity = n
}

// Add records a new observation.
//
// Once the ring is full the oldest retained sample is overwritten.
// Non-finite values are accepted and propagate through mean and deviation.
func (c *Counter) Add(value float64) {
	switch {
	case c.capacity == 0 || c.count < c.capacity:
		c.samples = append(c.samples, value)
		c.count++
	default:
		c.samples[c.head] = value
		c.head = (c.head + 1) % c.capacity
	}
	c.total++

	if !c.hasExtrema {
		c.min, c.max = value, value
		c.hasExtrema = true
	} else {
		c.min = math.Min(c.min, value)
		c.max = math.Max(c.max, value)
	}

	if c.hist != nil {
		c.hist.record(value)
	}
}

// at returns the i-th retained sample, oldest first.
func (c *Counter) at(i int) float64 {
	return c.samples[(c.head+i)%len(c.samples)]
}

// Last returns the sample offset positions before the most recent one.
//
// Last(0) is the most recently added value. It returns NaN when offset is
// negative or not smaller than Len(); it never wraps to another sample.
func (c *Counter) Last(offset int) float64 {
	if offset < 0 || offset >= c.count {
		return math.NaN()
	}
	return c.at(c.count - 1 - offset)
}

// Mean returns the arithmetic mean of the retained window, or NaN if empty.
func (c *Counter) Mean() float64 {
	if c.count == 0 {
		return math.NaN()
	}
	var sum float64
	for i := 0; i < c.count; i++ {
		sum += c.at(i)
	}
	return sum / float64(c.count)
}

// Min returns the all-time minimum, or NaN if nothing was added since the last reset.
func (c *Counter) Min() float64 {
	if !c.hasExtrema {
		return math.NaN()
	}
	return c.min
}

// Max returns the all-time maximum, or NaN if nothing was added since the last reset.
func (c *Counter) Max() float64 {
	if !c.hasExtrema {
		return math.NaN()
	}
	return c.max
}

// Deviation returns the population standard deviation of the retained window.
func (c *Counter) Deviation() float64 {
	return c.DeviationAround(c.Mean())
}

// DeviationAround returns the population standard deviation of the retained
// window around the supplied mean. It returns NaN if the window is empty.
func (c *Counter) DeviationAround(mean float64) float64 {
	if c.count == 0 {
		return math.NaN()
	}
	var dispersion float64
	for i := 0; i < c.count; i++ {
		d := c.at(i) - mean
		dispersion += d * d
	}
	return math.Sqrt(dispersion / float64(c.count))
}

// Len returns the number of retained samples.
func (c *Counter) Len() int {
	return c.count
}

// Total returns the number of Add calls since creation or the last reset.
func (c *Counter) Total() int {
	return c.total
}

// Samples returns a copy of the retained window in chronological order.
func (c *Counter) Samples() []float64 {
	result := make([]float64, c.count)
	for i := 0; i < c.count; i++ {
		result[i] = c.at(i)
	}
	return result
}

// Snapshot returns the rounded statistics of the counter.
func (c *Counter) Snapshot() CounterSnapshot {
	mean := c.Mean()
	snap := CounterSnapshot{
		Name:      c.name,
		Length:    c.count,
		Last:      c.round(c.Last(0)),
		Mean:      c.round(mean),
		Min:       c.round(c.Min()),
		Max:       c.round(c.Max()),
		Deviation: c.round(c.DeviationAround(mean)),
	}
	if c.hist != nil && c.total > 0 {
		p := c.hist.snapshot()
		snap.Percentiles = &PercentileSnapshot{
			P50: c.round(p.P50),
			P90: c.round(p.P90),
			P95: c.round(p.P95),
			P99: c.round(p.P99),
		}
	}
	return snap
}

// Reset clears samples, extrema and percentile state. Capacity is preserved.
func (c *Counter) Reset() {
	if c.capacity > 0 {
		c.samples = make([]float64, 0, c.capacity)
	} else {
		c.samples = nil
	}
	c.head = 0
	c.count = 0
	c.total = 0
	c.min, c.max = 0, 0
	c.hasExtrema = false
	if c.hist != nil {
		c.hist.reset()
	}
}

func (c *Counter) round(x float64) float64 {
	return Round(x, c.roundFactor)
}

// Round rounds x to the precision described by factor (10^decimals).
// NaN and infinities are returned unchanged, as is any x too large to scale.
func Round(x, factor float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scaled := x * factor
	if math.IsInf(scaled, 0) {
		return x
	}
	return math.Round(scaled) / factor
}
