// Package plot draws rolling line charts of a counter's raw samples.
//
// Layout computes chart geometry for the most recent samples and is
// independent of any drawing surface. Render rasterizes a layout into a
// character grid for terminals.
package plot

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default chart settings.
const (
	DefaultLimit  = 200
	DefaultWidth  = 80
	DefaultHeight = 12
)

// Options configures a Plot.
type Options struct {
	// Limit is the number of most recent samples shown (default: 200)
	Limit int

	// Width and Height are the drawing size in chart units (default: 80x12)
	Width  float64
	Height float64

	// HighlightThreshold marks samples above this value (nil = no highlighting)
	HighlightThreshold *float64

	// ShowThreshold draws a horizontal line at HighlightThreshold
	ShowThreshold bool

	// ShowMean draws a horizontal line at the mean of the visible window
	ShowMean bool
}

// Plot lays out line charts with fixed options.
type Plot struct {
	opts Options
}

// Point is one sample placed on the chart.
type Point struct {
	X, Y        float64
	Value       float64
	Highlighted bool
}

// Frame is the geometry of one chart drawing.
//
// Y grows downward: the window maximum sits at 0 and the minimum at Height.
type Frame struct {
	Width  float64
	Height float64
	Step   float64

	Points []Point

	// Statistics of the visible window
	Min  float64
	Max  float64
	Mean float64

	HasMean bool
	MeanY   float64

	HasThreshold bool
	ThresholdY   float64
}

// New creates a plot, filling unset options with defaults.
func New(opts Options) *Plot {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Plot{opts: opts}
}

// Options returns the effective options.
func (p *Plot) Options() Options {
	return p.opts
}

// Threshold returns a pointer to v, for Options.HighlightThreshold.
func Threshold(v float64) *float64 {
	return &v
}

// Layout places the most recent Limit samples on the chart.
//
// The vertical scale spans [min, max] of the visible window, not the
// counter's all-time extrema. A flat window is drawn at mid-height, and a
// threshold outside the window range gets no line.
// Samples are expected oldest first, as returned by Counter.Samples.
func (p *Plot) Layout(samples []float64) Frame {
	frame := Frame{
		Width:  p.opts.Width,
		Height: p.opts.Height,
		Step:   p.opts.Width / float64(p.opts.Limit),
	}

	start := len(samples) - p.opts.Limit
	if start < 0 {
		start = 0
	}
	window := samples[start:]
	if len(window) == 0 {
		return frame
	}

	frame.Min = floats.Min(window)
	frame.Max = floats.Max(window)
	frame.Mean = stat.Mean(window, nil)

	if p.opts.ShowMean {
		frame.HasMean = true
		frame.MeanY = frame.scale(frame.Mean)
	}

	threshold := p.opts.HighlightThreshold
	if threshold != nil && p.opts.ShowThreshold && frame.Max > frame.Min &&
		*threshold >= frame.Min && *threshold <= frame.Max {
		frame.HasThreshold = true
		frame.ThresholdY = frame.scale(*threshold)
	}

	frame.Points = make([]Point, len(window))
	for i, v := range window {
		frame.Points[i] = Point{
			X:           float64(i) * frame.Step,
			Y:           frame.scale(v),
			Value:       v,
			Highlighted: threshold != nil && v > *threshold,
		}
	}

	return frame
}

// scale maps a value to a vertical position.
func (f *Frame) scale(v float64) float64 {
	span := f.Max - f.Min
	if span == 0 || math.IsNaN(span) {
		return f.Height / 2
	}
	return (1 - (v-f.Min)/span) * f.Height
}
