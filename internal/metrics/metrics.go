package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SeriesRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statemod_series_read_total",
			Help: "Total time series read from StateMod files",
		},
		[]string{"interval"},
	)

	ParseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statemod_parse_errors_total",
			Help: "Total parse failures by file kind",
		},
		[]string{"kind"},
	)

	ComponentsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statemod_components_read_total",
			Help: "Total dataset components read by status",
		},
		[]string{"status"},
	)

	DatasetReadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statemod_dataset_read_latency_seconds",
			Help:    "Full response-file dataset read latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"basin"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statemod_fetches_total",
			Help: "Total remote dataset fetches",
		},
		[]string{"host", "status"},
	)
)
