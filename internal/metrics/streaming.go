// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VideoResolutionsTotal tracks metadata resolutions by source and outcome.
	VideoResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_video_resolutions_total",
		Help: "Total number of video metadata resolutions by source and result",
	}, []string{"source", "result"})

	// UpstreamFetchDuration tracks how long upstream metadata fetches take.
	UpstreamFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clipgate_upstream_fetch_duration_seconds",
		Help:    "Upstream metadata fetch latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 20, 30},
	}, []string{"source", "result"})

	// StreamBytesTotal counts bytes relayed from upstream to clients.
	StreamBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_stream_bytes_total",
		Help: "Total bytes streamed to clients by mode",
	}, []string{"mode"})

	// StreamsActive is the number of streams currently being relayed.
	StreamsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "clipgate_streams_active",
		Help: "Number of streams currently relayed by mode",
	}, []string{"mode"})

	// StreamsTotal tracks stream outcomes.
	StreamsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_streams_total",
		Help: "Total number of streams by mode and result",
	}, []string{"mode", "result"})
)

// RecordResolution records the outcome of a metadata resolution.
func RecordResolution(source, result string) {
	VideoResolutionsTotal.WithLabelValues(source, result).Inc()
}

// ObserveUpstreamFetch records the latency of an upstream metadata fetch.
func ObserveUpstreamFetch(source string, success bool, d time.Duration) {
	UpstreamFetchDuration.WithLabelValues(source, resultLabel(success)).Observe(d.Seconds())
}

// StreamStarted increments the active gauge and returns the matching decrement.
func StreamStarted(mode string) func() {
	g := StreamsActive.WithLabelValues(mode)
	g.Inc()
	return g.Dec
}

// AddStreamBytes adds n relayed bytes for mode.
func AddStreamBytes(mode string, n int) {
	if n <= 0 {
		return
	}
	StreamBytesTotal.WithLabelValues(mode).Add(float64(n))
}

// RecordStream records the final outcome of a stream.
func RecordStream(mode string, success bool) {
	StreamsTotal.WithLabelValues(mode, resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

var (
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "clipgate_circuit_breaker_state",
		Help: "Circuit breaker state per upstream (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	circuitBreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_circuit_breaker_trips_total",
		Help: "Total number of circuit breaker trips by reason",
	}, []string{"name", "reason"})
)

// SetCircuitBreakerState publishes the breaker state for name.
func SetCircuitBreakerState(name, state string) {
	v := 0.0
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	circuitBreakerState.WithLabelValues(name).Set(v)
}

// RecordCircuitBreakerTrip counts a transition into the open state.
func RecordCircuitBreakerTrip(name, reason string) {
	circuitBreakerTrips.WithLabelValues(name, reason).Inc()
}
