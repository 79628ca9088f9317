// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fileRequestsDeniedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_upload_requests_denied_total",
		Help: "Number of upload file requests denied, by reason",
	}, []string{"reason"})

	fileRequestsAllowedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipgate_upload_requests_allowed_total",
		Help: "Number of upload file requests served",
	})

	fileCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipgate_upload_cache_hits_total",
		Help: "Number of upload file requests served as 304 Not Modified",
	})
)

func recordFileRequestAllowed() {
	fileRequestsAllowedTotal.Inc()
}

func recordFileRequestDenied(reason string) {
	fileRequestsDeniedTotal.WithLabelValues(reason).Inc()
}

func recordFileCacheHit() {
	fileCacheHitsTotal.Inc()
}
