// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestVideoAttributes(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		quality string
		itag    string
		wantLen int
	}{
		{name: "all fields", source: "youtube", quality: "720p", itag: "22", wantLen: 3},
		{name: "listing only", source: "youtube", wantLen: 1},
		{name: "empty", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := VideoAttributes(tt.source, tt.quality, tt.itag)
			if len(attrs) != tt.wantLen {
				t.Errorf("Expected %d attributes, got %d", tt.wantLen, len(attrs))
			}
			if tt.source != "" {
				verifyAttribute(t, attrs, VideoSourceKey, tt.source)
			}
			if tt.quality != "" {
				verifyAttribute(t, attrs, VideoQualityKey, tt.quality)
			}
			if tt.itag != "" {
				verifyAttribute(t, attrs, VideoItagKey, tt.itag)
			}
		})
	}
}

func TestStreamAttributes(t *testing.T) {
	attrs := StreamAttributes("download", 1<<20)
	verifyAttribute(t, attrs, StreamModeKey, "download")
	for _, attr := range attrs {
		if string(attr.Key) == StreamBytesKey && attr.Value.AsInt64() != 1<<20 {
			t.Errorf("Expected %s=%d, got %d", StreamBytesKey, 1<<20, attr.Value.AsInt64())
		}
	}
}

func TestErrorAttributes(t *testing.T) {
	attrs := ErrorAttributes("upstream_fetch")
	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if string(attr.Key) == ErrorKey && !attr.Value.AsBool() {
			t.Error("Expected error=true")
		}
	}
	verifyAttribute(t, attrs, ErrorTypeKey, "upstream_fetch")
}

func verifyAttribute(t *testing.T, attrs []attribute.KeyValue, key, expectedValue string) {
	t.Helper()
	for _, attr := range attrs {
		if string(attr.Key) == key {
			if attr.Value.AsString() != expectedValue {
				t.Errorf("Expected %s=%s, got %s", key, expectedValue, attr.Value.AsString())
			}
			return
		}
	}
	t.Errorf("Attribute %s not found", key)
}
