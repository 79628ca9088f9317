// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
}

func (s *Server) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeOpError(w, r, opShorten, err)
		return
	}

	link, err := s.deps.Shortener.Shorten(r.Context(), req.URL)
	if err != nil {
		writeOpError(w, r, opShorten, err)
		return
	}
	writeJSON(w, r, http.StatusOK, shortenResponse{
		ShortURL:    s.deps.Shortener.ShortURL(requestOrigin(r), link.Code),
		OriginalURL: link.URL,
		ShortCode:   link.Code,
	})
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	link, err := s.deps.Shortener.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeOpError(w, r, opRedirect, err)
		return
	}

	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, link.URL, http.StatusFound)
}

// requestOrigin is the scheme and host the request was addressed to.
// Deployments behind a proxy should set shortener.baseUrl instead.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
