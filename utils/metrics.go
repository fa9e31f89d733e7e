package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, route and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sawa_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration observes request latency per route.
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sawa_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// XPGranted counts XP awarded by source feature.
	XPGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sawa_xp_granted_total",
			Help: "Total XP granted, by source",
		},
		[]string{"source"},
	)

	// OptimisticRollbacks counts failed mutations that were rolled back.
	OptimisticRollbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sawa_optimistic_rollbacks_total",
			Help: "Optimistic cache patches rolled back after a failed write",
		},
	)
)

// InitMetrics registers application metrics with the default registry.
func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, XPGranted, OptimisticRollbacks)
}
