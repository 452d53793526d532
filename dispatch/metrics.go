package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questdeck_notifications_dispatched_total",
			Help: "Total number of notifications handed to platform delivery",
		},
		[]string{"kind"},
	)

	suppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questdeck_notifications_suppressed_total",
			Help: "Total number of dispatches that intentionally produced no notification",
		},
		[]string{"kind", "reason"},
	)

	dispatchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questdeck_notification_errors_total",
			Help: "Total number of dispatch failures by pipeline stage",
		},
		[]string{"kind", "stage"},
	)

	soundPlayedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "questdeck_notification_sounds_played_total",
			Help: "Total number of companion sound effects played",
		},
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "questdeck_notification_dispatch_duration_seconds",
			Help:    "Duration of notification dispatches in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)
)
