// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	controlhttp "github.com/ManuGH/clipgate/internal/control/http"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/messages"
	"github.com/ManuGH/clipgate/internal/profile"
	"github.com/ManuGH/clipgate/internal/shortener"
	"github.com/ManuGH/clipgate/internal/video"
)

// operation names the endpoint family an error is rendered for.
type operation string

const (
	opInfo     operation = "info"
	opPreview  operation = "preview"
	opDownload operation = "download"
	opShorten  operation = "shorten"
	opRedirect operation = "redirect"
	opMessages operation = "messages"
	opProfile  operation = "profile"
)

const maxJSONBody = 64 << 10

var errMalformedBody = errors.New("malformed request body")

type errorRule struct {
	target  error
	status  int
	message string
}

func streamRules(noun, verb string) []errorRule {
	return []errorRule{
		{video.ErrInvalidInput, http.StatusBadRequest, "URL and quality are required"},
		{video.ErrStreamUnsupported, http.StatusBadRequest, noun + " currently supported only for YouTube videos"},
		{video.ErrInvalidURL, http.StatusBadRequest, "Invalid YouTube URL"},
		{video.ErrQualityUnavailable, http.StatusNotFound, "Selected quality not available"},
		{video.ErrMetadataFetch, http.StatusInternalServerError, "Failed to fetch video info"},
		{video.ErrStreamOpen, http.StatusInternalServerError, "Failed to " + verb + " video"},
	}
}

// errorTable maps domain errors to status codes and client messages per
// operation. Rules are checked in order with errors.Is.
var errorTable = map[operation][]errorRule{
	opInfo: {
		{video.ErrInvalidInput, http.StatusBadRequest, "URL is required"},
		{video.ErrInvalidURL, http.StatusBadRequest, "Invalid YouTube URL"},
		{video.ErrUnsupportedPlatform, http.StatusBadRequest, "Unsupported platform"},
		{video.ErrMetadataFetch, http.StatusInternalServerError, "Failed to fetch video info"},
	},
	opPreview:  streamRules("Preview", "preview"),
	opDownload: streamRules("Download", "download"),
	opShorten: {
		{shortener.ErrURLRequired, http.StatusBadRequest, "URL is required"},
		{shortener.ErrInvalidURL, http.StatusBadRequest, "Invalid URL format"},
	},
	opRedirect: {
		{shortener.ErrInvalidCode, http.StatusBadRequest, "Invalid short code"},
		{shortener.ErrNotFound, http.StatusNotFound, "URL not found"},
	},
	opMessages: {
		{messages.ErrInvalidCategory, http.StatusBadRequest, "Unknown category"},
		{messages.ErrInvalidSort, http.StatusBadRequest, "Unknown sort order"},
		{messages.ErrContentRequired, http.StatusBadRequest, "Content is required"},
		{messages.ErrCategoryRequired, http.StatusBadRequest, "Category is required"},
		{messages.ErrContentTooLong, http.StatusBadRequest, "Content is too long"},
		{messages.ErrNotFound, http.StatusNotFound, "Message not found"},
	},
	opProfile: {
		{profile.ErrUsernameRequired, http.StatusBadRequest, "Username is required"},
		{profile.ErrNotImage, http.StatusBadRequest, "Only image uploads are allowed"},
		{profile.ErrTooLarge, http.StatusBadRequest, "Photo exceeds the upload size limit"},
	},
}

// statusFor returns the HTTP status and client message for err.
func statusFor(op operation, err error) (int, string) {
	for _, rule := range errorTable[op] {
		if errors.Is(err, rule.target) {
			return rule.status, rule.message
		}
	}
	if errors.Is(err, errMalformedBody) {
		return http.StatusBadRequest, "Invalid request body"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// writeError writes the JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	controlhttp.WriteError(w, r, status, message)
}

// writeOpError maps err and writes it. Server-side failures are logged with
// the underlying cause; the client only sees the mapped message.
func writeOpError(w http.ResponseWriter, r *http.Request, op operation, err error) {
	status, message := statusFor(op, err)
	logger := log.WithComponentFromContext(r.Context(), "api")
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str(log.FieldEvent, "request.failed").
		Str("operation", string(op)).
		Int("status", status).
		Msg(message)
	writeError(w, r, status, message)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	controlhttp.WriteJSON(w, r, status, v)
}

// decodeJSON reads a bounded JSON body into dst. Unknown fields are ignored
// so older clients keep working.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		// a domain error raised by a custom unmarshaler keeps its identity
		if errors.Is(err, video.ErrInvalidInput) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}
