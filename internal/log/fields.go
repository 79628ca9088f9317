// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"

	FieldEvent     = "event"
	FieldComponent = "component"

	// Media fields
	FieldSource  = "source"
	FieldQuality = "quality"
	FieldItag    = "itag"
	FieldMode    = "mode"
	FieldBytes   = "bytes"

	// HTTP fields
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldRemoteAddr = "remote_addr"

	// Links
	FieldShortCode = "short_code"
)
