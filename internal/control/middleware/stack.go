// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"github.com/go-chi/chi/v5"

	cglog "github.com/ManuGH/clipgate/internal/log"
)

// StackConfig configures the HTTP ingress middleware stack.
type StackConfig struct {
	// CORS
	EnableCORS           bool
	Origins              *OriginSet
	CORSAllowCredentials bool

	// Security headers
	EnableSecurityHeaders bool
	CSP                   string

	// Observability
	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool
}

// NewRouter constructs a chi router with the middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the middleware stack to r, outermost first.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.EnableCORS {
		origins := cfg.Origins
		if origins == nil {
			origins = NewOriginSet(nil)
		}
		r.Use(CORS(origins, cfg.CORSAllowCredentials))
	}
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(cfg.CSP))
	}
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.TracingService != "" {
		r.Use(Tracing(cfg.TracingService))
	}
	// logging sits innermost so it sees the full handler latency
	if cfg.EnableLogging {
		r.Use(cglog.Middleware())
	}
}
