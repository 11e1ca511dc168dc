// Package prometheus exposes registry snapshots as Prometheus gauges.
//
// The collector reads a snapshot on every scrape. WriteTextfile writes the
// text exposition format for the node exporter textfile collector, so no
// listener is needed.
package prometheus

import (
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "perfstats"

// SnapshotFunc returns the snapshot to export.
type SnapshotFunc func() stats.Snapshot

// Collector implements prometheus.Collector over registry snapshots.
type Collector struct {
	snapshot SnapshotFunc

	elapsed    *prometheus.Desc
	length     *prometheus.Desc
	last       *prometheus.Desc
	mean       *prometheus.Desc
	min        *prometheus.Desc
	max        *prometheus.Desc
	deviation  *prometheus.Desc
	percentile *prometheus.Desc
}

// NewCollector creates a collector. An empty namespace selects DefaultNamespace.
//
// snapshot is called from the scraping goroutine; wrap shared registries
// in stats.Locked and pass its Snapshot method.
func NewCollector(namespace string, snapshot SnapshotFunc) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "counter", name), help, labels, nil)
	}

	return &Collector{
		snapshot: snapshot,
		elapsed: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "elapsed_seconds"),
			"Time since the registry was created or reset", nil, nil),
		length:     desc("length", "Samples in the retained window", "counter"),
		last:       desc("last", "Most recent sample", "counter"),
		mean:       desc("mean", "Mean of the retained window", "counter"),
		min:        desc("min", "All-time minimum", "counter"),
		max:        desc("max", "All-time maximum", "counter"),
		deviation:  desc("deviation", "Population standard deviation of the retained window", "counter"),
		percentile: desc("percentile", "All-time percentile", "counter", "quantile"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.elapsed
	ch <- c.length
	ch <- c.last
	ch <- c.mean
	ch <- c.min
	ch <- c.max
	ch <- c.deviation
	ch <- c.percentile
}

// Collect implements prometheus.Collector. Undefined statistics of empty
// counters are omitted.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.snapshot()

	ch <- prometheus.MustNewConstMetric(c.elapsed, prometheus.GaugeValue, snap.ElapsedTime/1000)

	for _, counter := range snap.Counters {
		ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(counter.Length), counter.Name)

		gauge := func(desc *prometheus.Desc, v float64, labels ...string) {
			if math.IsNaN(v) {
				return
			}
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, append([]string{counter.Name}, labels...)...)
		}

		gauge(c.last, counter.Last)
		gauge(c.mean, counter.Mean)
		gauge(c.min, counter.Min)
		gauge(c.max, counter.Max)
		gauge(c.deviation, counter.Deviation)

		if p := counter.Percentiles; p != nil {
			gauge(c.percentile, p.P50, quantile(0.5))
			gauge(c.percentile, p.P90, quantile(0.9))
			gauge(c.percentile, p.P95, quantile(0.95))
			gauge(c.percentile, p.P99, quantile(0.99))
		}
	}
}

func quantile(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// WriteTextfile writes one snapshot to path in the text exposition format.
// The file is replaced atomically.
func WriteTextfile(path, namespace string, snap stats.Snapshot) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(namespace, func() stats.Snapshot { return snap }))
	return prometheus.WriteToTextfile(path, reg)
}

var _ prometheus.Collector = (*Collector)(nil)
