package output

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// CounterRow is a flat struct for CSV export of one counter snapshot.
// Undefined statistics are written as empty cells.
type CounterRow struct {
	ElapsedTime string `csv:"elapsed_ms"`
	Name        string `csv:"name"`
	Length      int    `csv:"length"`
	Last        string `csv:"last"`
	Mean        string `csv:"mean"`
	Min         string `csv:"min"`
	Max         string `csv:"max"`
	Deviation   string `csv:"deviation"`
	P50         string `csv:"p50"`
	P90         string `csv:"p90"`
	P95         string `csv:"p95"`
	P99         string `csv:"p99"`
}

// ToCSV converts a snapshot to one row per counter.
func ToCSV(s stats.Snapshot) []CounterRow {
	elapsed := csvValue(s.ElapsedTime)
	rows := make([]CounterRow, 0, len(s.Counters))

	for _, c := range s.Counters {
		row := CounterRow{
			ElapsedTime: elapsed,
			Name:        c.Name,
			Length:      c.Length,
			Last:        csvValue(c.Last),
			Mean:        csvValue(c.Mean),
			Min:         csvValue(c.Min),
			Max:         csvValue(c.Max),
			Deviation:   csvValue(c.Deviation),
		}
		if p := c.Percentiles; p != nil {
			row.P50 = csvValue(p.P50)
			row.P90 = csvValue(p.P90)
			row.P95 = csvValue(p.P95)
			row.P99 = csvValue(p.P99)
		}
		rows = append(rows, row)
	}

	return rows
}

// CSVRenderer writes snapshots as CSV with a header row.
type CSVRenderer struct {
	// NoHeader skips the header, for appending to an existing file
	NoHeader bool
}

// Render implements Renderer.
func (r *CSVRenderer) Render(w io.Writer, s stats.Snapshot) error {
	rows := ToCSV(s)

	var err error
	if r.NoHeader {
		err = gocsv.MarshalWithoutHeaders(&rows, w)
	} else {
		err = gocsv.Marshal(&rows, w)
	}
	if err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func csvValue(v float64) string {
	s := formatValue(v)
	if s == undefinedValue {
		return ""
	}
	return s
}
