// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/daemon"
	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/version"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// resolveConfigPath returns the explicit path, or <dataDir>/config.yaml when
// it exists, or "" for ENV-only configuration.
func resolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	dataDir := config.ParseString(config.EnvPrefix+"DATA_DIR", config.Defaults().DataDir)
	auto := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(auto); err == nil {
		return auto
	}
	return ""
}

func loadConfig(explicit string) (config.AppConfig, *config.Loader, string, error) {
	path := resolveConfigPath(explicit)
	loader := config.NewLoader(path, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		return cfg, nil, path, err
	}
	return cfg, loader, path, nil
}

func runServe(ctx context.Context, explicitConfig string) error {
	cglog.Configure(cglog.Config{Level: "info", Version: version.Version})
	logger := cglog.WithComponent("daemon")

	cfg, loader, path, err := loadConfig(explicitConfig)
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
		return err
	}

	cglog.Configure(cglog.Config{Level: cfg.LogLevel, Version: cfg.Version})
	logger = cglog.WithComponent("daemon")
	if path != "" {
		logger.Info().Str("event", "config.loaded").Str("source", "file").Str("path", path).Msg("loaded configuration from file")
	} else {
		logger.Info().Str("event", "config.loaded").Str("source", "env+defaults").Msg("loaded configuration from environment and defaults")
	}

	rt, err := daemon.Bootstrap(ctx, cfg, daemon.Options{})
	if err != nil {
		logger.Error().Err(err).Str("event", "startup.failed").Msg("startup failed, verify configuration and permissions")
		return err
	}

	mgr, err := daemon.NewManager(cfg.Server, daemon.Deps{
		Logger:     logger,
		APIHandler: rt.Server.Handler(),
	})
	if err != nil {
		_ = rt.Close(context.WithoutCancel(ctx))
		return fmt.Errorf("create manager: %w", err)
	}
	rt.RegisterHooks(mgr)

	holder := config.NewConfigHolder(cfg, loader, path)
	app := daemon.NewApp(logger, mgr, holder, rt.Origins)
	return app.Run(ctx)
}
