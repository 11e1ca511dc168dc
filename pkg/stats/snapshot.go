package stats

import (
	"encoding/json"
	"math"
)

// CounterSnapshot is a rounded, immutable read of one counter.
//
// Fields of an empty counter are NaN; check Length before trusting them.
// JSON encoding writes NaN as null.
type CounterSnapshot struct {
	Name        string              `json:"name" yaml:"name"`
	Length      int                 `json:"length" yaml:"length"`
	Last        float64             `json:"last" yaml:"last"`
	Mean        float64             `json:"mean" yaml:"mean"`
	Min         float64             `json:"min" yaml:"min"`
	Max         float64             `json:"max" yaml:"max"`
	Deviation   float64             `json:"deviation" yaml:"deviation"`
	Percentiles *PercentileSnapshot `json:"percentiles,omitempty" yaml:"percentiles,omitempty"`
}

// Snapshot is a point-in-time view of a registry.
type Snapshot struct {
	// ElapsedTime is the time since registry creation in milliseconds
	ElapsedTime float64 `json:"elapsedTime" yaml:"elapsedTime"`

	// Counters in creation order
	Counters []CounterSnapshot `json:"counters" yaml:"counters"`
}

// Find returns the snapshot of the named counter.
func (s Snapshot) Find(name string) (CounterSnapshot, bool) {
	for _, c := range s.Counters {
		if c.Name == name {
			return c, true
		}
	}
	return CounterSnapshot{}, false
}

// ElapsedSeconds returns the elapsed time rounded to whole seconds.
func (s Snapshot) ElapsedSeconds() float64 {
	return math.Round(s.ElapsedTime / 1000)
}

// MarshalJSON implements json.Marshaler.
func (c CounterSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string              `json:"name"`
		Length      int                 `json:"length"`
		Last        *float64            `json:"last"`
		Mean        *float64            `json:"mean"`
		Min         *float64            `json:"min"`
		Max         *float64            `json:"max"`
		Deviation   *float64            `json:"deviation"`
		Percentiles *PercentileSnapshot `json:"percentiles,omitempty"`
	}{
		Name:        c.Name,
		Length:      c.Length,
		Last:        finite(c.Last),
		Mean:        finite(c.Mean),
		Min:         finite(c.Min),
		Max:         finite(c.Max),
		Deviation:   finite(c.Deviation),
		Percentiles: c.Percentiles,
	})
}

// finite returns nil for values JSON cannot represent.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
