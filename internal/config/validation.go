// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"

	platformnet "github.com/ManuGH/clipgate/internal/platform/net"
)

// ValidationError collects every problem found in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks ranges and cross-field constraints.
func Validate(cfg AppConfig) error {
	v := &ValidationError{}
	add := func(format string, args ...any) {
		v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(cfg.DataDir) == "" {
		add("dataDir must not be empty")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil || cfg.LogLevel == "" {
		add("logLevel %q is not a valid level", cfg.LogLevel)
	}

	if _, port, err := net.SplitHostPort(cfg.Server.ListenAddr); err != nil || port == "" {
		add("server.listen %q must be host:port or :port", cfg.Server.ListenAddr)
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.IdleTimeout < 0 {
		add("server timeouts must not be negative")
	}

	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			if cfg.CORS.AllowCredentials {
				add("cors.allowedOrigins \"*\" cannot be combined with allowCredentials")
			}
			continue
		}
		if _, ok := platformnet.ParseDirectHTTPURL(origin); !ok {
			add("cors origin %q is not an http(s) origin", origin)
		}
	}

	if cfg.Upstream.Timeout <= 0 {
		add("upstream.timeout must be positive")
	}
	if cfg.Upstream.RatePerSec < 0 || cfg.Upstream.Burst < 0 {
		add("upstream.ratePerSec and upstream.burst must not be negative")
	}
	if cfg.Upstream.ChunkSize < 1024 || cfg.Upstream.ChunkSize > 4<<20 {
		add("upstream.chunkSize must be between 1KiB and 4MiB")
	}
	if cfg.Upstream.BreakerThreshold < 0 {
		add("upstream.breakerThreshold must not be negative")
	}
	if cfg.Upstream.BreakerThreshold > 0 && cfg.Upstream.BreakerReset <= 0 {
		add("upstream.breakerReset must be positive when the breaker is enabled")
	}

	switch cfg.Shortener.Store {
	case StoreSQLite, StoreBadger:
	case StoreRedis:
		if cfg.Storage.RedisAddr == "" {
			add("storage.redisAddr is required for the redis link store")
		}
	default:
		add("shortener.store %q must be one of sqlite, redis, badger", cfg.Shortener.Store)
	}
	if cfg.Shortener.BaseURL != "" {
		if _, ok := platformnet.ParseDirectHTTPURL(cfg.Shortener.BaseURL); !ok {
			add("shortener.baseUrl %q is not an http(s) url", cfg.Shortener.BaseURL)
		}
	}
	if cfg.Shortener.RateLimit < 0 {
		add("shortener.rateLimit must not be negative")
	}

	if cfg.Upload.MaxBytes <= 0 {
		add("upload.maxBytes must be positive")
	}

	if cfg.Telemetry.Enabled {
		switch cfg.Telemetry.Exporter {
		case "grpc", "http":
		default:
			add("telemetry.exporter %q must be grpc or http", cfg.Telemetry.Exporter)
		}
		if cfg.Telemetry.SamplingRate < 0 || cfg.Telemetry.SamplingRate > 1 {
			add("telemetry.samplingRate must be within [0, 1]")
		}
	}

	if len(v.Problems) > 0 {
		return v
	}
	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
