// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trueorscam_request_duration_seconds",
			Help:    "Total time taken for detection requests in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60},
		},
		[]string{"type"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trueorscam_inference_duration_seconds",
			Help:    "Time spent in the model inference loop in seconds",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 15, 20, 30},
		},
		[]string{"category"},
	)

	InferenceAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trueorscam_inference_attempts",
			Help:    "Upstream attempts consumed per successful inference",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
		[]string{"category"},
	)

	MockFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trueorscam_mock_fallbacks_total",
			Help: "Verdicts synthesized locally instead of by the model",
		},
		[]string{"category", "reason"},
	)

	VerdictCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trueorscam_verdict_count_total",
			Help: "Verdicts returned, by input type and mode",
		},
		[]string{"type", "mode"},
	)

	SignalErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trueorscam_signal_errors_total",
			Help: "Signal collectors that returned a benign failure",
		},
		[]string{"collector"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trueorscam_cache_hits_total",
			Help: "Verdict cache lookups",
		},
		[]string{"result"},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trueorscam_status_code",
			Help: "Status Codes",
		},
		[]string{"path", "status_code"},
	)
)
