package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelsmith",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Pipeline runs by mode and terminal state.",
	}, []string{"mode", "terminal"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reelsmith",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of each pipeline stage.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
	}, []string{"stage"})

	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reelsmith",
		Subsystem: "pipeline",
		Name:      "renders_total",
		Help:      "Video render attempts by outcome status.",
	}, []string{"status"})
)
