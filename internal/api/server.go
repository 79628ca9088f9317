// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api is the HTTP surface of clipgate.
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/control/middleware"
	"github.com/ManuGH/clipgate/internal/health"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/messages"
	"github.com/ManuGH/clipgate/internal/profile"
	"github.com/ManuGH/clipgate/internal/shortener"
	"github.com/ManuGH/clipgate/internal/video"
)

// TracingService is the span service name used for inbound requests.
const TracingService = "clipgate"

// Deps holds all dependencies for the API server.
type Deps struct {
	Resolver  *video.Resolver
	Streamer  *video.Streamer
	Shortener *shortener.Service
	Messages  *messages.Service
	Profiles  *profile.Store
	Health    *health.Manager
	// Origins is shared with the daemon so a config reload can swap it.
	Origins *middleware.OriginSet
}

// Server routes requests to the video, shortener, message and profile
// services.
type Server struct {
	cfg     config.AppConfig
	deps    Deps
	logger  zerolog.Logger
	handler http.Handler
}

// New validates deps and builds the router.
func New(cfg config.AppConfig, deps Deps) (*Server, error) {
	switch {
	case deps.Resolver == nil || deps.Streamer == nil:
		return nil, errors.New("api: video resolver and streamer are required")
	case deps.Shortener == nil:
		return nil, errors.New("api: shortener is required")
	case deps.Messages == nil:
		return nil, errors.New("api: messages service is required")
	case deps.Profiles == nil:
		return nil, errors.New("api: profile store is required")
	}
	if deps.Health == nil {
		deps.Health = health.NewManager(cfg.Version)
	}
	if deps.Origins == nil {
		deps.Origins = middleware.NewOriginSet(cfg.CORS.AllowedOrigins)
	}

	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: log.WithComponent("api"),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	stack := middleware.StackConfig{
		EnableCORS:            true,
		Origins:               s.deps.Origins,
		CORSAllowCredentials:  s.cfg.CORS.AllowCredentials,
		EnableSecurityHeaders: true,
		CSP:                   middleware.DefaultCSP,
		EnableMetrics:         s.cfg.Metrics.Enabled,
		EnableLogging:         true,
	}
	if s.cfg.Telemetry.Enabled {
		stack.TracingService = TracingService
	}
	r := middleware.NewRouter(stack)

	r.Get("/healthz", s.deps.Health.ServeHealth)
	r.Get("/readyz", s.deps.Health.ServeReady)
	if s.cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/video-info", s.handleVideoInfo)
		r.Post("/preview", s.handleStream(video.ModePreview))
		r.Post("/download", s.handleStream(video.ModeDownload))

		r.With(middleware.RateLimit(middleware.RateLimitConfig{
			RequestLimit: s.cfg.Shortener.RateLimit,
			WindowSize:   s.cfg.Shortener.RateWindow,
		})).Post("/shorten", s.handleShorten)

		r.Get("/messages", s.handleListMessages)
		r.Post("/messages", s.handleCreateMessage)
		r.Get("/messages/random", s.handleRandomMessage)
		r.Get("/messages/{id}", s.handleGetMessage)

		r.Post("/profile", s.handleProfile)
	})

	r.Get("/s/{code}", s.handleRedirect)
	r.Handle(profile.URLPrefix+"/*", http.StripPrefix(profile.URLPrefix, s.uploadsFileServer()))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "The requested resource does not exist")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
