// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() AppConfig {
	cfg := Defaults()
	cfg.DataDir = "/var/lib/clipgate"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(validConfig()))
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		want   string
	}{
		{"bad level", func(c *AppConfig) { c.LogLevel = "loud" }, "logLevel"},
		{"empty level", func(c *AppConfig) { c.LogLevel = "" }, "logLevel"},
		{"bad listen", func(c *AppConfig) { c.Server.ListenAddr = "5000" }, "server.listen"},
		{"bad origin", func(c *AppConfig) { c.CORS.AllowedOrigins = []string{"localhost:3000"} }, "cors origin"},
		{"wildcard credentials", func(c *AppConfig) {
			c.CORS.AllowedOrigins = []string{"*"}
			c.CORS.AllowCredentials = true
		}, "allowCredentials"},
		{"zero timeout", func(c *AppConfig) { c.Upstream.Timeout = 0 }, "upstream.timeout"},
		{"tiny chunk", func(c *AppConfig) { c.Upstream.ChunkSize = 10 }, "chunkSize"},
		{"breaker without reset", func(c *AppConfig) { c.Upstream.BreakerReset = 0 }, "breakerReset"},
		{"unknown store", func(c *AppConfig) { c.Shortener.Store = "mongo" }, "shortener.store"},
		{"redis without addr", func(c *AppConfig) {
			c.Shortener.Store = StoreRedis
			c.Storage.RedisAddr = ""
		}, "redisAddr"},
		{"bad base url", func(c *AppConfig) { c.Shortener.BaseURL = "clip.example" }, "baseUrl"},
		{"upload", func(c *AppConfig) { c.Upload.MaxBytes = 0 }, "upload.maxBytes"},
		{"exporter", func(c *AppConfig) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "zipkin"
		}, "telemetry.exporter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Upstream.Timeout = 0
	cfg.Upload.MaxBytes = -1

	var verr *ValidationError
	require.ErrorAs(t, Validate(cfg), &verr)
	assert.Len(t, verr.Problems, 2)
}
