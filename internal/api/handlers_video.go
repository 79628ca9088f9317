// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ManuGH/clipgate/internal/video"
)

type videoInfoRequest struct {
	URL string `json:"url"`
}

type streamRequest struct {
	URL     string                `json:"url"`
	Quality video.QualitySelector `json:"quality"`
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	var req videoInfoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeOpError(w, r, opInfo, err)
		return
	}

	info, err := s.deps.Resolver.FetchInfo(r.Context(), req.URL)
	if err != nil {
		writeOpError(w, r, opInfo, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}

// handleStream serves preview and download. Errors before the first byte are
// JSON; an interrupted relay can only be logged.
func (s *Server) handleStream(mode video.Mode) http.HandlerFunc {
	op := opPreview
	if mode == video.ModeDownload {
		op = opDownload
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req streamRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeOpError(w, r, op, fmt.Errorf("%w: %w", video.ErrInvalidInput, err))
			return
		}

		sel, err := s.deps.Resolver.SelectVariant(r.Context(), req.URL, req.Quality.Label)
		if err != nil {
			writeOpError(w, r, op, err)
			return
		}

		err = s.deps.Streamer.Stream(r.Context(), w, sel, mode)
		switch {
		case err == nil:
		case errors.Is(err, video.ErrStreamInterrupted):
			// headers are gone; the streamer already logged the cause
		default:
			writeOpError(w, r, op, err)
		}
	}
}
