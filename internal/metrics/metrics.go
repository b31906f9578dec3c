package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewise_requests_total",
			Help: "Total analyze requests by terminal outcome",
		},
		[]string{"outcome"}, // answered, ambiguous, error
	)

	IntentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storewise_intents_classified_total",
			Help: "Questions classified per intent category",
		},
		[]string{"intent"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "storewise_pipeline_duration_seconds",
			Help: "End-to-end duration of the analysis pipeline",
		},
	)

	DataPointsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storewise_data_points_analyzed_total",
			Help: "Records retrieved and aggregated across all requests",
		},
	)
)
