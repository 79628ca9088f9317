// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shortLinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipgate_short_links_created_total",
		Help: "Total number of short links created",
	})

	shortLinkLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_short_link_lookups_total",
		Help: "Total number of short link lookups by result",
	}, []string{"result"})

	messagesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_messages_created_total",
		Help: "Total number of board messages created by category",
	}, []string{"category"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipgate_profile_uploads_total",
		Help: "Total number of profile photo uploads by result",
	}, []string{"result"})
)

// IncShortLinkCreated records a new short link.
func IncShortLinkCreated() {
	shortLinksCreated.Inc()
}

// IncShortLinkLookup records a short link lookup ("hit", "miss" or "error").
func IncShortLinkLookup(result string) {
	shortLinkLookups.WithLabelValues(result).Inc()
}

// IncMessageCreated records a new board message.
func IncMessageCreated(category string) {
	messagesCreated.WithLabelValues(category).Inc()
}

// IncUpload records a profile upload outcome.
func IncUpload(success bool) {
	uploadsTotal.WithLabelValues(resultLabel(success)).Inc()
}
