// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/clipgate/internal/messages"
)

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.deps.Messages.List(r.Context(), messages.Filter{
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	})
	if err != nil {
		writeOpError(w, r, opMessages, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleRandomMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := s.deps.Messages.Random(r.URL.Query().Get("category"))
	if err != nil {
		writeOpError(w, r, opMessages, err)
		return
	}
	writeJSON(w, r, http.StatusOK, msg)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "Invalid message id")
		return
	}
	msg, err := s.deps.Messages.Get(r.Context(), id)
	if err != nil {
		writeOpError(w, r, opMessages, err)
		return
	}
	writeJSON(w, r, http.StatusOK, msg)
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var in messages.NewMessage
	if err := decodeJSON(w, r, &in); err != nil {
		writeOpError(w, r, opMessages, err)
		return
	}
	msg, err := s.deps.Messages.Create(r.Context(), in)
	if err != nil {
		writeOpError(w, r, opMessages, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, msg)
}
