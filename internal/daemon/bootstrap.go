// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package daemon wires the services together and owns the process lifecycle.
package daemon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ManuGH/clipgate/internal/api"
	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/control/middleware"
	"github.com/ManuGH/clipgate/internal/health"
	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/messages"
	"github.com/ManuGH/clipgate/internal/persistence/sqlite"
	"github.com/ManuGH/clipgate/internal/platform/httpx"
	"github.com/ManuGH/clipgate/internal/profile"
	"github.com/ManuGH/clipgate/internal/shortener"
	"github.com/ManuGH/clipgate/internal/telemetry"
	"github.com/ManuGH/clipgate/internal/upstream/youtube"
	"github.com/ManuGH/clipgate/internal/video"
)

// UploadsDirName is the profile upload root below the data directory.
const UploadsDirName = "uploads"

// Runtime is the wired service graph for one process.
type Runtime struct {
	Server  *api.Server
	Health  *health.Manager
	Origins *middleware.OriginSet

	closers []namedHook
}

// Options overrides parts of the wiring. Zero values select the production
// implementation.
type Options struct {
	// Extractor replaces the YouTube client.
	Extractor video.Extractor
}

// Bootstrap opens the stores and builds the API server for cfg. On error
// everything opened so far is released.
func Bootstrap(ctx context.Context, cfg config.AppConfig, opts Options) (rt *Runtime, err error) {
	logger := log.WithComponent("bootstrap")
	rt = &Runtime{}
	defer func() {
		if err != nil {
			if cerr := rt.Close(context.WithoutCancel(ctx)); cerr != nil {
				logger.Warn().Err(cerr).Msg("cleanup after failed bootstrap")
			}
			rt = nil
		}
	}()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    api.TracingService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return rt, fmt.Errorf("telemetry: %w", err)
	}
	rt.addCloser("telemetry", tp.Shutdown)

	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		return rt, err
	}

	db, err := sqlite.Open(cfg.Storage.SQLitePath, sqlite.DefaultConfig())
	if err != nil {
		return rt, err
	}
	rt.addCloser("sqlite", func(context.Context) error { return db.Close() })

	links, err := shortener.OpenStore(ctx, shortener.StoreConfig{
		Backend:   cfg.Shortener.Store,
		SQLite:    db,
		BadgerDir: cfg.Storage.BadgerDir,
		Redis: shortener.RedisConfig{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		},
	})
	if err != nil {
		return rt, fmt.Errorf("open link store: %w", err)
	}
	rt.addCloser("link-store", func(context.Context) error { return links.Close() })

	repo, err := messages.NewSQLiteRepository(ctx, db)
	if err != nil {
		return rt, fmt.Errorf("open message store: %w", err)
	}

	uploads := filepath.Join(cfg.DataDir, UploadsDirName)
	if err := os.MkdirAll(uploads, 0o750); err != nil {
		return rt, fmt.Errorf("create uploads dir: %w", err)
	}

	extractor := opts.Extractor
	if extractor == nil {
		ytCfg := youtube.Config{
			MetadataClient: httpx.NewClient(cfg.Upstream.Timeout),
			StreamClient:   httpx.NewStreamingClient(),
			RatePerSec:     cfg.Upstream.RatePerSec,
			Burst:          cfg.Upstream.Burst,
		}
		if cfg.Upstream.BreakerThreshold > 0 {
			ytCfg.Breaker = youtube.NewBreaker(cfg.Upstream.BreakerThreshold, cfg.Upstream.BreakerReset)
		}
		yt, err := youtube.New(ytCfg)
		if err != nil {
			return rt, err
		}
		extractor = yt
	}

	rt.Health = health.NewManager(cfg.Version)
	registerCheckers(rt.Health, cfg, db, links, uploads)

	rt.Origins = middleware.NewOriginSet(cfg.CORS.AllowedOrigins)

	rt.Server, err = api.New(cfg, api.Deps{
		Resolver:  video.NewResolver(extractor, video.WithFetchTimeout(cfg.Upstream.Timeout)),
		Streamer:  video.NewStreamer(extractor, cfg.Upstream.ChunkSize),
		Shortener: shortener.NewService(links, shortener.WithBaseURL(cfg.Shortener.BaseURL)),
		Messages:  messages.NewService(repo),
		Profiles:  profile.NewStore(uploads, cfg.Upload.MaxBytes),
		Health:    rt.Health,
		Origins:   rt.Origins,
	})
	if err != nil {
		return rt, err
	}

	logger.Info().
		Str("event", "bootstrap.done").
		Str("link_store", backendName(cfg.Shortener.Store)).
		Str("sqlite", cfg.Storage.SQLitePath).
		Msg("services wired")
	return rt, nil
}

func registerCheckers(hm *health.Manager, cfg config.AppConfig, db *sql.DB, links shortener.Store, uploads string) {
	hm.RegisterChecker(health.NewPingChecker("sqlite", db.PingContext, true))
	if backend := backendName(cfg.Shortener.Store); backend != config.StoreSQLite {
		hm.RegisterChecker(health.NewPingChecker("link_store_"+backend, links.Ping, true))
	}
	hm.RegisterChecker(health.NewDirChecker("uploads", uploads))
}

func backendName(store string) string {
	if store == "" {
		return config.StoreSQLite
	}
	return store
}

func (rt *Runtime) addCloser(name string, fn ShutdownHook) {
	rt.closers = append(rt.closers, namedHook{name: name, hook: fn})
}

// RegisterHooks hands resource cleanup to m, in opening order so they close
// in reverse.
func (rt *Runtime) RegisterHooks(m Manager) {
	for _, c := range rt.closers {
		m.RegisterShutdownHook(c.name, c.hook)
	}
	rt.closers = nil
}

// Close releases resources that were not handed to a Manager.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].hook(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rt.closers[i].name, err))
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
