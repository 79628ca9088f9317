// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	controlhttp "github.com/ManuGH/clipgate/internal/control/http"
)

func TestStack_AllowsCrossOriginPostWithoutOrigin(t *testing.T) {
	r := NewRouter(StackConfig{EnableCORS: true, Origins: NewOriginSet([]string{"http://localhost:5173"})})
	r.Post("/api/video-info", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// non-browser callers carry no Origin and are not blocked
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/video-info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(controlhttp.HeaderRequestID))
}

func TestStack_RecoversPanics(t *testing.T) {
	r := NewRouter(StackConfig{EnableSecurityHeaders: true, EnableMetrics: true, EnableLogging: true})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(controlhttp.HeaderRequestID, "trace-me")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error","requestId":"trace-me"}`, w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRequestID_RejectsMalformedHeader(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get(controlhttp.HeaderRequestID)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(controlhttp.HeaderRequestID, "bad id with spaces\n")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEqual(t, "bad id with spaces\n", seen)
	assert.Len(t, seen, 36)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, DefaultCSP, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"), "plain http must not get HSTS")
}
