// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	ServiceNameKey = "service.name"

	// Video attributes
	VideoSourceKey  = "video.source"
	VideoQualityKey = "video.quality"
	VideoItagKey    = "video.itag"

	// Stream attributes
	StreamModeKey  = "stream.mode"
	StreamBytesKey = "stream.bytes"

	// Short link attributes
	ShortCodeKey = "shortlink.code"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// VideoAttributes describes the resolved video. Empty values are omitted.
func VideoAttributes(source, quality, itag string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if source != "" {
		attrs = append(attrs, attribute.String(VideoSourceKey, source))
	}
	if quality != "" {
		attrs = append(attrs, attribute.String(VideoQualityKey, quality))
	}
	if itag != "" {
		attrs = append(attrs, attribute.String(VideoItagKey, itag))
	}
	return attrs
}

// StreamAttributes describes a finished relay.
func StreamAttributes(mode string, bytes int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(StreamModeKey, mode),
		attribute.Int64(StreamBytesKey, bytes),
	}
}

// ErrorAttributes flags a span as failed with a coarse error class.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
