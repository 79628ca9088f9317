// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/ManuGH/clipgate/internal/log"
)

// WriteJSON encodes v with the given status. Encoding failures are logged;
// the status line has already been sent by then.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := log.L()
		if r != nil {
			l := log.WithComponentFromContext(r.Context(), "http")
			logger = &l
		}
		logger.Error().Err(err).Int("status", status).Msg("failed to encode json response")
	}
}

// WriteError writes the {"message": ..., "requestId": ...} error body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	reqID := ""
	if r != nil {
		reqID = log.RequestIDFromContext(r.Context())
	}
	if reqID == "" {
		reqID = w.Header().Get(HeaderRequestID)
	}

	body := map[string]string{JSONKeyMessage: message}
	if reqID != "" {
		body[JSONKeyRequestID] = reqID
		w.Header().Set(HeaderRequestID, reqID)
	}
	WriteJSON(w, r, status, body)
}
