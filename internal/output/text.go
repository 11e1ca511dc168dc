package output

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// undefinedValue is printed for NaN statistics of empty counters.
const undefinedValue = "-"

// TextFormatter renders snapshots as the plain text report:
//
//	Elapsed time: 3s
//	Counters:
//		ms:
//			length: 180
//			last: 16.4
//			...
type TextFormatter struct {
	Colors *ColorScheme
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(noColor bool) *TextFormatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &TextFormatter{Colors: scheme}
}

// Render writes the report followed by a newline.
func (f *TextFormatter) Render(w io.Writer, s stats.Snapshot) error {
	_, err := io.WriteString(w, f.Format(s)+"\n")
	return err
}

// Format returns the report without a trailing newline.
func (f *TextFormatter) Format(s stats.Snapshot) string {
	var buf strings.Builder

	buf.WriteString(f.Colors.Header.Sprint("Elapsed time:"))
	buf.WriteString(" " + formatValue(s.ElapsedSeconds()) + "s")
	buf.WriteString("\n" + f.Colors.Header.Sprint("Counters:"))

	for _, c := range s.Counters {
		buf.WriteString("\n\t" + f.Colors.Name.Sprint(c.Name) + ":")
		buf.WriteString(f.line("length", strconv.Itoa(c.Length), false))
		f.value(&buf, "last", c.Last)
		f.value(&buf, "mean", c.Mean)
		f.value(&buf, "min", c.Min)
		f.value(&buf, "max", c.Max)
		f.value(&buf, "deviation", c.Deviation)

		if p := c.Percentiles; p != nil {
			f.value(&buf, "p50", p.P50)
			f.value(&buf, "p90", p.P90)
			f.value(&buf, "p95", p.P95)
			f.value(&buf, "p99", p.P99)
		}
	}

	return buf.String()
}

func (f *TextFormatter) value(buf *strings.Builder, label string, v float64) {
	buf.WriteString(f.line(label, formatValue(v), math.IsNaN(v)))
}

func (f *TextFormatter) line(label, value string, undefined bool) string {
	colored := f.Colors.Value.Sprint(value)
	if undefined {
		colored = f.Colors.Undefined.Sprint(value)
	}
	return "\n\t\t" + f.Colors.Label.Sprint(label+":") + " " + colored
}

// formatValue prints the shortest representation of v, or "-" for NaN.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return undefinedValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
