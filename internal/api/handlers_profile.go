// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ManuGH/clipgate/internal/profile"
)

// multipartOverhead leaves room for the username field and part headers.
const multipartOverhead = 64 << 10

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	limit := s.deps.Profiles.MaxBytes() + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = profile.ErrTooLarge
		} else {
			err = fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		writeOpError(w, r, opProfile, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var photo io.Reader
	file, _, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		photo = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeOpError(w, r, opProfile, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}

	p, err := s.deps.Profiles.Update(r.Context(), r.FormValue("username"), photo)
	if err != nil {
		writeOpError(w, r, opProfile, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}
