// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/control/middleware"
	"github.com/ManuGH/clipgate/internal/log"
)

// App owns the long-lived runtime lifecycle (config watcher, reload wiring)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	cfgHolder    *config.ConfigHolder
	origins      *middleware.OriginSet
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. cfgHolder and origins may be nil,
// which disables hot reload.
func NewApp(logger zerolog.Logger, manager Manager, cfgHolder *config.ConfigHolder, origins *middleware.OriginSet) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		cfgHolder:    cfgHolder,
		origins:      origins,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	// Config watcher is best-effort: startup should not fail if watcher cannot be started.
	if a.cfgHolder != nil {
		if err := a.cfgHolder.StartWatcher(ctx); err != nil {
			a.logger.Warn().Err(err).Str("event", "config.watcher_start_failed").Msg("failed to start config watcher")
		}

		applyCh := make(chan config.AppConfig, 1)
		a.cfgHolder.RegisterListener(applyCh)
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case cfg := <-applyCh:
					a.apply(cfg)
				}
			}
		})
	}

	if a.cfgHolder != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str("event", "config.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading config")

					if err := a.cfgHolder.Reload(ctx); err != nil {
						a.logger.Warn().
							Err(err).
							Str("event", "config.reload_failed").
							Msg("config reload failed")
					}
				}
			}
		})
	}

	g.Go(func() error {
		return a.manager.Start(ctx)
	})

	return g.Wait()
}

// apply pushes the reloadable settings into the running services. Listen
// address, storage and upstream limits need a restart.
func (a *App) apply(cfg config.AppConfig) {
	if !log.SetLevel(cfg.LogLevel) {
		a.logger.Warn().Str("level", cfg.LogLevel).Msg("ignoring unknown log level")
	}
	if a.origins != nil {
		a.origins.Set(cfg.CORS.AllowedOrigins)
	}
	a.logger.Info().
		Str("event", "config.applied").
		Str("log_level", cfg.LogLevel).
		Int("cors_origins", len(cfg.CORS.AllowedOrigins)).
		Msg("applied reloaded configuration")
}
