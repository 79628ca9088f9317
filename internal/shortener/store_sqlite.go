// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package shortener

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/clipgate/internal/persistence/sqlite"
)

const linksSchema = `CREATE TABLE IF NOT EXISTS short_links (
	code       TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	created_at INTEGER NOT NULL
)`

// SQLiteStore keeps links in the shared SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore migrates the link table on db. The caller owns db.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if err := sqlite.Migrate(ctx, db, linksSchema); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, link Link) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO short_links (code, url, created_at) VALUES (?, ?, ?)`,
		link.Code, link.URL, link.CreatedAt.UnixMilli())
	if err != nil {
		// modernc reports constraint violations only through the message text.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrCodeTaken
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, code string) (Link, error) {
	var (
		link    Link
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT code, url, created_at FROM short_links WHERE code = ?`, code).
		Scan(&link.Code, &link.URL, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Link{}, ErrNotFound
	}
	if err != nil {
		return Link{}, fmt.Errorf("query link: %w", err)
	}
	link.CreatedAt = time.UnixMilli(created).UTC()
	return link, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the database is shared with other repositories.
func (s *SQLiteStore) Close() error { return nil }
