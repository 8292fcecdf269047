// Package metrics exposes the prometheus counters and histograms the
// filter updates during build and query. grounded on the teacher's
// pkg/metrics package: promauto-registered GaugeVec/CounterVec/
// HistogramVec values, collected by whatever Prometheus registry the
// embedding process already exposes. RangeFilter never starts its own
// /metrics server - that wiring, like the teacher's, belongs to the
// embedding application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BuildDuration tracks wall-clock time spent in Filter.Build.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rangefilter_build_duration_seconds",
		Help:    "Time spent building a filter from a sorted key set.",
		Buckets: prometheus.DefBuckets,
	})

	// PositionsPerBlock tracks n_i, the number of positions encoded in
	// each block, across all built filters.
	PositionsPerBlock = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rangefilter_positions_per_block",
		Help:    "Number of encoded positions per Golomb-coded block.",
		Buckets: prometheus.LinearBuckets(0, 25, 12),
	})

	// BlocksTouchedPerQuery tracks how many blocks a single RangeQuery
	// call had to probe before returning.
	BlocksTouchedPerQuery = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rangefilter_blocks_touched_per_query",
		Help:    "Number of blocks probed to answer a single range query.",
		Buckets: prometheus.LinearBuckets(1, 1, 8),
	})

	// QueriesTotal counts range queries by outcome (hit or miss).
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rangefilter_queries_total",
		Help: "Total range queries, labeled by result.",
	}, []string{"result"})

	// FiltersBuiltTotal counts successful Filter.Build calls.
	FiltersBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rangefilter_filters_built_total",
		Help: "Total number of filters successfully built.",
	})
)
