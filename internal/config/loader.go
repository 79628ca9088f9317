// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAllowedOrigins are the local development frontends.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader. An empty configPath means
// ENV-only configuration.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) key(name string) string {
	k := EnvPrefix + name
	l.ConsumedEnvKeys[k] = struct{}{}
	return k
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The file is parsed strictly, then ENV is applied, then the result is validated.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	l.mergeEnv(&cfg)
	cfg.Version = l.version

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.DataDir, "clipgate.db")
	}
	if cfg.Storage.BadgerDir == "" {
		cfg.Storage.BadgerDir = filepath.Join(cfg.DataDir, "links")
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:  "data",
		LogLevel: "info",
		Server:   DefaultServerConfig(),
		CORS: CORSConfig{
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		},
		Upstream: UpstreamConfig{
			Timeout:    30 * time.Second,
			RatePerSec: 5,
			Burst:      10,
			ChunkSize:  32 * 1024,

			BreakerThreshold: 5,
			BreakerReset:     30 * time.Second,
		},
		Shortener: ShortenerConfig{
			Store:      StoreSQLite,
			RateLimit:  30,
			RateWindow: time.Minute,
		},
		Storage: StorageConfig{
			RedisAddr: "localhost:6379",
		},
		Upload: UploadConfig{
			MaxBytes: 5 << 20,
		},
		Metrics: MetricsConfig{Enabled: true},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
			Environment:  "development",
		},
	}
}

// loadFile decodes path over cfg with STRICT parsing.
// Unknown fields cause an error to prevent silent misconfiguration.
func (l *Loader) loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *AppConfig) {
	cfg.DataDir = ParseString(l.key("DATA_DIR"), cfg.DataDir)
	cfg.LogLevel = ParseString(l.key("LOG_LEVEL"), cfg.LogLevel)

	// PORT is the platform convention; CLIPGATE_LISTEN wins when both are set.
	if port := ParseString("PORT", ""); port != "" {
		l.ConsumedEnvKeys["PORT"] = struct{}{}
		cfg.Server.ListenAddr = ":" + port
	}
	cfg.Server.ListenAddr = ParseString(l.key("LISTEN"), cfg.Server.ListenAddr)
	cfg.Server.ReadTimeout = ParseDuration(l.key("READ_TIMEOUT"), cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = ParseDuration(l.key("WRITE_TIMEOUT"), cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = ParseDuration(l.key("IDLE_TIMEOUT"), cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = ParseDuration(l.key("SHUTDOWN_TIMEOUT"), cfg.Server.ShutdownTimeout)

	cfg.CORS.AllowedOrigins = ParseList(l.key("CORS_ORIGINS"), cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowCredentials = ParseBool(l.key("CORS_CREDENTIALS"), cfg.CORS.AllowCredentials)

	cfg.Upstream.Timeout = ParseDuration(l.key("UPSTREAM_TIMEOUT"), cfg.Upstream.Timeout)
	cfg.Upstream.RatePerSec = ParseFloat(l.key("UPSTREAM_RATE_PER_SEC"), cfg.Upstream.RatePerSec)
	cfg.Upstream.Burst = ParseInt(l.key("UPSTREAM_BURST"), cfg.Upstream.Burst)
	cfg.Upstream.ChunkSize = ParseInt(l.key("STREAM_CHUNK_SIZE"), cfg.Upstream.ChunkSize)
	cfg.Upstream.BreakerThreshold = ParseInt(l.key("UPSTREAM_BREAKER_THRESHOLD"), cfg.Upstream.BreakerThreshold)
	cfg.Upstream.BreakerReset = ParseDuration(l.key("UPSTREAM_BREAKER_RESET"), cfg.Upstream.BreakerReset)

	cfg.Shortener.Store = ParseString(l.key("SHORTENER_STORE"), cfg.Shortener.Store)
	cfg.Shortener.BaseURL = ParseString(l.key("SHORTENER_BASE_URL"), cfg.Shortener.BaseURL)
	cfg.Shortener.RateLimit = ParseInt(l.key("SHORTENER_RATE_LIMIT"), cfg.Shortener.RateLimit)
	cfg.Shortener.RateWindow = ParseDuration(l.key("SHORTENER_RATE_WINDOW"), cfg.Shortener.RateWindow)

	cfg.Storage.SQLitePath = ParseString(l.key("SQLITE_PATH"), cfg.Storage.SQLitePath)
	cfg.Storage.BadgerDir = ParseString(l.key("BADGER_DIR"), cfg.Storage.BadgerDir)
	cfg.Storage.RedisAddr = ParseString(l.key("REDIS_ADDR"), cfg.Storage.RedisAddr)
	cfg.Storage.RedisPassword = ParseString(l.key("REDIS_PASSWORD"), cfg.Storage.RedisPassword)
	cfg.Storage.RedisDB = ParseInt(l.key("REDIS_DB"), cfg.Storage.RedisDB)

	cfg.Upload.MaxBytes = ParseInt64(l.key("UPLOAD_MAX_BYTES"), cfg.Upload.MaxBytes)
	cfg.Metrics.Enabled = ParseBool(l.key("METRICS_ENABLED"), cfg.Metrics.Enabled)

	cfg.Telemetry.Enabled = ParseBool(l.key("OTEL_ENABLED"), cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = ParseString(l.key("OTEL_EXPORTER"), cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = ParseString(l.key("OTEL_ENDPOINT"), cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = ParseFloat(l.key("OTEL_SAMPLING_RATE"), cfg.Telemetry.SamplingRate)
	cfg.Telemetry.Environment = ParseString(l.key("OTEL_ENVIRONMENT"), cfg.Telemetry.Environment)
}
