package stats

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range in scaled units. With the default precision of 3 and
// millisecond inputs this spans 1 microsecond to 1 hour.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// PercentileSnapshot contains all-time percentiles of a counter.
type PercentileSnapshot struct {
	P50 float64 `json:"p50" yaml:"p50"`
	P90 float64 `json:"p90" yaml:"p90"`
	P95 float64 `json:"p95" yaml:"p95"`
	P99 float64 `json:"p99" yaml:"p99"`
}

// percentileTracker records values into an HDR histogram.
//
// Values are scaled to integers by the counter's rounding factor and
// clamped to the histogram range, so negative inputs count as zero.
// Like min and max, it covers the all-time history and is not affected
// by ring eviction.
type percentileTracker struct {
	hist  *hdrhistogram.Histogram
	scale float64
}

func newPercentileTracker(scale float64) *percentileTracker {
	return &percentileTracker{
		hist:  hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
		scale: scale,
	}
}

func (p *percentileTracker) record(value float64) {
	if math.IsNaN(value) {
		return
	}
	scaled := value * p.scale
	var v int64
	switch {
	case scaled <= 0:
		v = 0
	case scaled >= histogramMax:
		v = histogramMax
	default:
		v = int64(math.Round(scaled))
	}
	// Clamped values are always within range.
	_ = p.hist.RecordValue(v)
}

func (p *percentileTracker) snapshot() PercentileSnapshot {
	return PercentileSnapshot{
		P50: float64(p.hist.ValueAtQuantile(50)) / p.scale,
		P90: float64(p.hist.ValueAtQuantile(90)) / p.scale,
		P95: float64(p.hist.ValueAtQuantile(95)) / p.scale,
		P99: float64(p.hist.ValueAtQuantile(99)) / p.scale,
	}
}

func (p *percentileTracker) reset() {
	p.hist.Reset()
}
