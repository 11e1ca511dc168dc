package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Cell glyphs
const (
	glyphEmpty     = ' '
	glyphPoint     = '•'
	glyphLink      = '│'
	glyphHighlight = '█'
	glyphMean      = '─'
	glyphThreshold = '┄'
)

// RenderOptions controls text rasterization.
type RenderOptions struct {
	// Title is printed above the chart (optional)
	Title string

	// NoColor disables ANSI colors
	NoColor bool

	// Axis prints window max and min beside the first and last rows
	Axis bool
}

type cell struct {
	glyph rune
	color *color.Color
}

// Render draws frame into a grid of ceil(Width) columns and ceil(Height)
// rows. Consecutive points are joined with vertical links; highlighted
// samples are drawn over the line, and both are drawn over the mean and
// threshold lines.
func Render(frame Frame, opts RenderOptions) string {
	cols := int(math.Ceil(frame.Width))
	rows := int(math.Ceil(frame.Height))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	lineColor := color.New(color.FgWhite)
	meanColor := color.New(color.FgBlue)
	thresholdColor := color.New(color.FgYellow)
	highlightColor := color.New(color.FgRed, color.Bold)
	if opts.NoColor {
		for _, c := range []*color.Color{lineColor, meanColor, thresholdColor, highlightColor} {
			c.DisableColor()
		}
	}

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{glyph: glyphEmpty}
		}
	}

	rowOf := func(y float64) int {
		if rows == 1 {
			return 0
		}
		return clamp(int(math.Round(y*float64(rows-1)/frame.Height)), 0, rows-1)
	}
	colOf := func(x float64) int {
		return clamp(int(x), 0, cols-1)
	}
	hline := func(y float64, glyph rune, c *color.Color) {
		r := rowOf(y)
		for col := range grid[r] {
			grid[r][col] = cell{glyph: glyph, color: c}
		}
	}

	if frame.HasThreshold && frame.ThresholdY >= 0 && frame.ThresholdY <= frame.Height {
		hline(frame.ThresholdY, glyphThreshold, thresholdColor)
	}
	if frame.HasMean {
		hline(frame.MeanY, glyphMean, meanColor)
	}

	prevRow := -1
	for _, p := range frame.Points {
		r, c := rowOf(p.Y), colOf(p.X)

		if prevRow >= 0 && prevRow != r {
			lo, hi := prevRow, r
			if lo > hi {
				lo, hi = hi, lo
			}
			for link := lo + 1; link < hi; link++ {
				if grid[link][c].glyph != glyphPoint && grid[link][c].glyph != glyphHighlight {
					grid[link][c] = cell{glyph: glyphLink, color: lineColor}
				}
			}
		}
		prevRow = r

		if grid[r][c].glyph == glyphHighlight {
			continue
		}
		if p.Highlighted {
			grid[r][c] = cell{glyph: glyphHighlight, color: highlightColor}
		} else {
			grid[r][c] = cell{glyph: glyphPoint, color: lineColor}
		}
	}

	var labels []string
	labelWidth := 0
	if opts.Axis && len(frame.Points) > 0 {
		labels = make([]string, rows)
		labels[0] = formatAxis(frame.Max)
		labels[rows-1] = formatAxis(frame.Min)
		for _, l := range labels {
			labelWidth = max(labelWidth, len(l))
		}
	}

	var buf strings.Builder
	if opts.Title != "" {
		buf.WriteString(opts.Title)
		if len(frame.Points) > 0 {
			buf.WriteString(fmt.Sprintf(" (min %s, max %s, mean %s)",
				formatAxis(frame.Min), formatAxis(frame.Max), formatAxis(frame.Mean)))
		}
		buf.WriteString("\n")
	}

	for r, row := range grid {
		if labels != nil {
			buf.WriteString(fmt.Sprintf("%*s │", labelWidth, labels[r]))
		}
		var line strings.Builder
		for _, c := range row {
			if c.color == nil {
				line.WriteRune(c.glyph)
				continue
			}
			line.WriteString(c.color.Sprint(string(c.glyph)))
		}
		buf.WriteString(strings.TrimRight(line.String(), " "))
		if r < rows-1 {
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
