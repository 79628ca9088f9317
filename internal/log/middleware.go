// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Middleware logs one "request.handled" event per request. It wraps the
// writer with chi's WrapResponseWriter so Flusher stays available to
// streaming handlers, and attaches a context logger for downstream use.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := WithContext(r.Context(), Base())
			ctx := reqLogger.WithContext(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			path := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pattern := rc.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			ev := reqLogger.Info()
			if status >= http.StatusInternalServerError {
				ev = reqLogger.Warn()
			}
			ev.Str(FieldEvent, "request.handled").
				Str(FieldMethod, r.Method).
				Str(FieldPath, path).
				Int(FieldStatus, status).
				Int(FieldBytes, ww.BytesWritten()).
				Int64(FieldDurationMS, time.Since(start).Milliseconds()).
				Str(FieldRemoteAddr, r.RemoteAddr).
				Msg("request handled")
		})
	}
}
