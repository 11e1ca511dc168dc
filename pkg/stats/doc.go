// Package stats provides rolling performance counters for sampling loops.
//
// A Counter keeps a bounded window of observations in a ring buffer and
// reports mean, population standard deviation, last value and all-time
// min/max. A Registry owns named counters, creates them on first use and
// derives "ms" and "fps" counters from frame timing.
//
// # Basic Usage
//
//	reg := stats.NewWithConfig(stats.Config{Capacity: 600})
//
//	for running {
//	    reg.FrameStart()
//	    render()
//	    reg.FrameEnd()
//
//	    reg.Add("entities", float64(len(world)))
//	}
//
//	snap := reg.Snapshot()
//	for _, c := range snap.Counters {
//	    fmt.Printf("%s: mean=%v dev=%v\n", c.Name, c.Mean, c.Deviation)
//	}
//
// # Windows and History
//
// Mean and deviation cover only the retained window. Min and max cover
// every value added since the last reset, including values the ring has
// evicted. Percentiles, when enabled, follow min and max.
//
// # Undefined Values
//
// Reads on an empty counter return NaN rather than failing, as does
// Last with an offset outside the retained window. Snapshots keep NaN;
// their JSON form encodes it as null.
//
// # Thread Safety
//
// Counter and Registry perform no synchronization. Locked wraps a
// Registry with one mutex for multi-goroutine use.
package stats
