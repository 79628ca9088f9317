// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import "errors"

var (
	// ErrInvalidInput indicates a missing or malformed url or quality.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidURL indicates the URL failed the extractor's own shape check.
	ErrInvalidURL = errors.New("invalid video url")
	// ErrUnsupportedPlatform indicates the classified source has no extractor.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrMetadataFetch indicates the upstream metadata call failed.
	ErrMetadataFetch = errors.New("metadata fetch failed")
	// ErrQualityUnavailable indicates no playable variant matches the requested label.
	ErrQualityUnavailable = errors.New("quality unavailable")
	// ErrStreamUnsupported indicates streaming was requested for a non-YouTube source.
	ErrStreamUnsupported = errors.New("preview or download unsupported for source")
	// ErrStreamOpen indicates the upstream stream could not be opened. No bytes were sent.
	ErrStreamOpen = errors.New("upstream stream open failed")
	// ErrStreamInterrupted indicates the relay failed after headers were sent.
	ErrStreamInterrupted = errors.New("stream interrupted")
)
