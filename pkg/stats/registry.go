package stats

import (
	"log/slog"
	"math"
	"time"

	"github.com/wesleyorama2/perfstats/internal/logging"
)

// Counter names fed by FrameEnd.
const (
	MsCounter  = "ms"
	FPSCounter = "fps"
)

// Sink receives a registry snapshot whenever a frame window closes.
type Sink interface {
	Refresh(Snapshot)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Snapshot)

// Refresh calls f(s).
func (f SinkFunc) Refresh(s Snapshot) {
	f(s)
}

// Config contains configuration for a Registry.
type Config struct {
	// Capacity is the default retained window of new counters (0 = unbounded)
	Capacity int

	// Capacities overrides Capacity for specific counter names
	Capacities map[string]int

	// RoundPrecision is the number of decimals used in snapshots (default: 3,
	// WholeNumbers for 0)
	RoundPrecision int

	// Percentiles enables HDR histogram percentiles on every counter
	Percentiles bool

	// FrameWindow is the interval over which FPS is computed (default: 1s)
	FrameWindow time.Duration

	// Clock is the time source (default: DefaultClock())
	Clock Clock

	// Sink is refreshed when a frame window closes (optional)
	Sink Sink

	// Logger receives debug events (default: discard)
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RoundPrecision: DefaultRoundPrecision,
		FrameWindow:    time.Second,
	}
}

// Registry owns a set of named counters and derives frame timing counters.
//
// Counters are created lazily on first use and kept in creation order.
// Registry performs no synchronization; it is meant for single-goroutine
// sampling loops. Wrap it with NewLocked when several goroutines share it.
type Registry struct {
	counters map[string]*Counter
	order    []string

	config   Config
	clock    Clock
	logger   *slog.Logger
	windowMs float64

	// Timing, in clock milliseconds
	createTime     float64
	frameStartTime float64
	windowStart    float64
	windowFrames   int
}

// New creates a registry with default configuration.
func New() *Registry {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a registry with custom configuration.
func NewWithConfig(config Config) *Registry {
	if config.RoundPrecision == 0 || config.RoundPrecision < WholeNumbers {
		config.RoundPrecision = DefaultRoundPrecision
	}
	if config.FrameWindow <= 0 {
		config.FrameWindow = time.Second
	}
	if config.Clock == nil {
		config.Clock = DefaultClock()
	}
	if config.Logger == nil {
		config.Logger = logging.Nop()
	}

	r := &Registry{
		config:   config,
		clock:    config.Clock,
		logger:   config.Logger,
		windowMs: float64(config.FrameWindow) / float64(time.Millisecond),
	}
	r.Reset()
	return r
}

// Add records value in the named counter, creating it if needed.
func (r *Registry) Add(name string, value float64) {
	r.Counter(name).Add(value)
}

// Counter returns the live handle of the named counter, creating it if needed.
//
// The handle stays valid until Reset; it may be used to change capacity
// before the first value arrives.
func (r *Registry) Counter(name string) *Counter {
	if c, ok := r.counters[name]; ok {
		return c
	}

	capacity := r.config.Capacity
	if n, ok := r.config.Capacities[name]; ok {
		capacity = n
	}

	c := NewCounterWithConfig(name, CounterConfig{
		Capacity:       capacity,
		RoundPrecision: r.config.RoundPrecision,
		Percentiles:    r.config.Percentiles,
	})
	r.counters[name] = c
	r.order = append(r.order, name)

	r.logger.Debug("counter created", "name", name, "capacity", capacity)
	return c
}

// Lookup returns the named counter without creating it.
func (r *Registry) Lookup(name string) (*Counter, bool) {
	c, ok := r.counters[name]
	return c, ok
}

// Names returns counter names in creation order.
func (r *Registry) Names() []string {
	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Snapshot returns the elapsed time and a snapshot of every counter.
func (r *Registry) Snapshot() Snapshot {
	counters := make([]CounterSnapshot, 0, len(r.order))
	for _, name := range r.order {
		counters = append(counters, r.counters[name].Snapshot())
	}

	return Snapshot{
		ElapsedTime: r.ElapsedTime(),
		Counters:    counters,
	}
}

// ResetCounter clears one counter in place. Unknown names are ignored.
func (r *Registry) ResetCounter(name string) {
	if c, ok := r.counters[name]; ok {
		c.Reset()
	}
}

// Reset drops every counter and restarts all timestamps from the clock.
// Previously returned Counter handles are detached from the registry.
func (r *Registry) Reset() {
	now := r.clock()

	r.counters = make(map[string]*Counter)
	r.order = nil
	r.createTime = now
	r.frameStartTime = now
	r.windowStart = now
	r.windowFrames = 0
}

// FrameStart marks the beginning of a frame.
func (r *Registry) FrameStart() {
	r.frameStartTime = r.clock()
}

// FrameEnd records the frame duration in the "ms" counter.
//
// When more than FrameWindow has passed since the current window opened,
// the frame rate of that window goes into the "fps" counter, a new window
// starts and the sink is refreshed.
func (r *Registry) FrameEnd() {
	now := r.clock()

	r.Add(MsCounter, now-r.frameStartTime)
	r.windowFrames++

	windowElapsed := now - r.windowStart
	if windowElapsed <= r.windowMs {
		return
	}

	fps := math.Round(float64(r.windowFrames) * 1000 / windowElapsed)
	r.Add(FPSCounter, fps)

	r.logger.Debug("frame window closed",
		"frames", r.windowFrames,
		"window_ms", windowElapsed,
		"fps", fps,
	)

	r.windowFrames = 0
	r.windowStart = now

	if r.config.Sink != nil {
		r.config.Sink.Refresh(r.Snapshot())
	}
}

// ElapsedTime returns the milliseconds since creation or the last Reset.
func (r *Registry) ElapsedTime() float64 {
	return r.clock() - r.createTime
}
