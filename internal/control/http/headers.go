// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package http holds the response conventions shared by middleware and
// handlers.
package http

// Canonical Header Names
const (
	// HeaderRequestID is the canonical header for request correlation.
	HeaderRequestID = "X-Request-ID"
)

// Canonical JSON Field Names
const (
	// JSONKeyRequestID is the canonical JSON key for request correlation.
	JSONKeyRequestID = "requestId"
	// JSONKeyMessage carries the human-readable error text.
	JSONKeyMessage = "message"
)
