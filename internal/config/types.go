// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the service configuration with precedence
// ENV > YAML file > defaults and supports hot reload of the file.
package config

import "time"

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CLIPGATE_"

// AppConfig is the fully resolved service configuration.
type AppConfig struct {
	Version  string `yaml:"-"`
	DataDir  string `yaml:"dataDir"`
	LogLevel string `yaml:"logLevel"`

	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Shortener ShortenerConfig `yaml:"shortener"`
	Storage   StorageConfig   `yaml:"storage"`
	Upload    UploadConfig    `yaml:"upload"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowedOrigins"`
	AllowCredentials bool     `yaml:"allowCredentials"`
}

// UpstreamConfig bounds calls to the video platform.
type UpstreamConfig struct {
	// Timeout bounds one metadata fetch.
	Timeout time.Duration `yaml:"timeout"`
	// RatePerSec and Burst feed a process-wide token bucket. 0 disables it.
	RatePerSec float64 `yaml:"ratePerSec"`
	Burst      int     `yaml:"burst"`
	// ChunkSize is the relay buffer size in bytes.
	ChunkSize int `yaml:"chunkSize"`
	// BreakerThreshold consecutive metadata failures open the circuit for
	// BreakerReset. 0 disables the breaker.
	BreakerThreshold int           `yaml:"breakerThreshold"`
	BreakerReset     time.Duration `yaml:"breakerReset"`
}

// Link store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreBadger = "badger"
)

// ShortenerConfig configures the URL shortener.
type ShortenerConfig struct {
	// Store selects the link backend: sqlite, redis or badger.
	Store string `yaml:"store"`
	// BaseURL prefixes generated short links. Empty uses the request origin.
	BaseURL string `yaml:"baseUrl"`
	// RateLimit is the per-IP request budget for POST /api/shorten per RateWindow.
	RateLimit  int           `yaml:"rateLimit"`
	RateWindow time.Duration `yaml:"rateWindow"`
}

// StorageConfig locates the persistence backends.
type StorageConfig struct {
	// SQLitePath defaults to <dataDir>/clipgate.db.
	SQLitePath string `yaml:"sqlitePath"`
	// BadgerDir defaults to <dataDir>/links.
	BadgerDir     string `yaml:"badgerDir"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDb"`
}

// UploadConfig bounds profile-photo uploads.
type UploadConfig struct {
	MaxBytes int64 `yaml:"maxBytes"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
	Environment  string  `yaml:"environment"`
}
