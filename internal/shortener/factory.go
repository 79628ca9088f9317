// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package shortener

import (
	"context"
	"database/sql"
	"fmt"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// StoreConfig selects and configures a link store.
type StoreConfig struct {
	Backend   string
	SQLite    *sql.DB
	BadgerDir string
	Redis     RedisConfig
}

// OpenStore creates a Store for cfg.Backend. An empty backend means sqlite.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("sqlite link store requires a database")
		}
		return NewSQLiteStore(ctx, cfg.SQLite)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case BackendBadger:
		return OpenBadgerStore(cfg.BadgerDir)
	default:
		return nil, fmt.Errorf("unknown link store backend: %s", cfg.Backend)
	}
}
