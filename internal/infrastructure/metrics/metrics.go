package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for funnel events handed to the collector
	EventsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_events_tracked_total",
			Help: "Total number of funnel events emitted, by event name",
		},
		[]string{"event"},
	)

	// Counter for collector calls that failed or panicked
	CollectorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_collector_failures_total",
			Help: "Total number of failed analytics collector calls",
		},
		[]string{"operation"},
	)

	// Counter for events dropped because the delivery queue was full
	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_events_dropped_total",
			Help: "Total number of events dropped by the async collector",
		},
	)

	// Histogram for request duration per route
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "funnel_http_request_duration_seconds",
			Help:    "Time spent serving funnel screens",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Gauge for funnel sessions held in memory
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "funnel_active_sessions_current",
			Help: "Current number of funnel sessions held in memory",
		},
	)
)
