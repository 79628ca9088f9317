// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuGH/clipgate/internal/log"
)

func TestWriteError_IncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/video-info", nil)
	req = req.WithContext(log.ContextWithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, "URL is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
	assert.JSONEq(t, `{"message":"URL is required","requestId":"req-42"}`, rec.Body.String())
}

func TestWriteError_WithoutRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "Short URL not found")
	assert.JSONEq(t, `{"message":"Short URL not found"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, nil, http.StatusCreated, map[string]int{"id": 7})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}
