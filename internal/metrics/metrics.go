package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"terminaltime/internal/db"
)

var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terminaltime_ephemeride_resolutions_total",
			Help: "Total ephemeride resolutions by source (store, generated, curated, random)",
		},
		[]string{"source"},
	)

	generatorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "terminaltime_generator_duration_seconds",
			Help:    "Latency of fact generator calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	storedCountDesc = prometheus.NewDesc(
		"terminaltime_ephemerides_stored",
		"Number of ephemeride records currently in the fact store",
		nil,
		nil,
	)
)

// StoreCollector is a custom Prometheus collector that reads the stored
// record count from the database on each scrape.
type StoreCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storedCountDesc
}

// Collect queries the database for the record count and emits it as a gauge.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	count, err := c.db.CountEphemerides(context.Background())
	if err != nil {
		slog.Error("failed to collect stored ephemeride count", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(storedCountDesc, prometheus.GaugeValue, float64(count))
}

var initOnce sync.Once

// Init registers all collectors. Must be called once at startup; database
// may be nil when no store is configured.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(resolutionsTotal, generatorDuration)
		if database != nil {
			prometheus.MustRegister(&StoreCollector{db: database})
		}
	})
}

// RecordResolution counts a resolution outcome by source.
func RecordResolution(source string) {
	resolutionsTotal.WithLabelValues(source).Inc()
}

// ObserveGeneratorDuration records the latency of one generator call.
func ObserveGeneratorDuration(d time.Duration) {
	generatorDuration.Observe(d.Seconds())
}
