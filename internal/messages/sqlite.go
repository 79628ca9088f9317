// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/clipgate/internal/persistence/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		content       TEXT NOT NULL,
		category      TEXT NOT NULL,
		likes         INTEGER NOT NULL DEFAULT 0,
		username      TEXT,
		profile_photo TEXT,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_category ON messages(category)`,
}

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var seedMessages = []Message{
	{Content: "Hello there! 👋 Have a wonderful day!", Category: CategoryGreetings, Likes: 42,
		User: &User{Username: "HappyUser123"}, CreatedAt: seedTime("2024-01-01T10:00:00Z")},
	{Content: "Why don't scientists trust atoms? Because they make up everything! 😄", Category: CategoryJokes, Likes: 28,
		User: &User{Username: "JokeMaster"}, CreatedAt: seedTime("2024-01-02T15:30:00Z")},
	{Content: "Believe you can and you're halfway there! ✨", Category: CategoryMotivational, Likes: 56,
		User: &User{Username: "Motivator"}, CreatedAt: seedTime("2024-01-03T08:45:00Z")},
	{Content: "Love is the master key that opens the gates of happiness! ❤️", Category: CategoryLove, Likes: 75,
		User: &User{Username: "LoveGuru"}, CreatedAt: seedTime("2024-01-04T12:00:00Z")},
}

// SQLiteRepository stores messages in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository migrates the schema and seeds the sample messages when
// the table is empty. The caller owns db.
func NewSQLiteRepository(ctx context.Context, db *sql.DB) (*SQLiteRepository, error) {
	if err := sqlite.Migrate(ctx, db, schema...); err != nil {
		return nil, err
	}
	r := &SQLiteRepository{db: db}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM messages`).Scan(&n); err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if n == 0 {
		for _, m := range seedMessages {
			if _, err := r.Insert(ctx, m); err != nil {
				return nil, fmt.Errorf("seed messages: %w", err)
			}
		}
	}
	return r, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (Message, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, content, category, likes, username, profile_photo, created_at
		FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, ErrNotFound
	}
	return m, err
}

func (r *SQLiteRepository) List(ctx context.Context, f Filter) ([]Message, error) {
	query := `SELECT id, content, category, likes, username, profile_photo, created_at FROM messages`
	var args []any
	if f.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, f.Category)
	}
	switch f.Sort {
	case SortNewest:
		query += ` ORDER BY created_at DESC, id DESC`
	case SortOldest:
		query += ` ORDER BY created_at ASC, id ASC`
	case SortPopular:
		query += ` ORDER BY likes DESC, id ASC`
	default:
		query += ` ORDER BY id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Insert(ctx context.Context, m Message) (Message, error) {
	var username, photo sql.NullString
	if m.User != nil {
		username = sql.NullString{String: m.User.Username, Valid: true}
		if m.User.ProfilePhoto != nil {
			photo = sql.NullString{String: *m.User.ProfilePhoto, Valid: true}
		}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (content, category, likes, username, profile_photo, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.Content, m.Category, m.Likes, username, photo, m.CreatedAt.UnixMilli())
	if err != nil {
		return Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, err
	}
	m.ID = id
	m.CreatedAt = time.UnixMilli(m.CreatedAt.UnixMilli()).UTC()
	return m, nil
}

// Ping checks the underlying database.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (Message, error) {
	var (
		m        Message
		username sql.NullString
		photo    sql.NullString
		created  int64
	)
	if err := s.Scan(&m.ID, &m.Content, &m.Category, &m.Likes, &username, &photo, &created); err != nil {
		return Message{}, err
	}
	if username.Valid {
		m.User = &User{Username: username.String}
		if photo.Valid {
			p := photo.String
			m.User.ProfilePhoto = &p
		}
	}
	m.CreatedAt = time.UnixMilli(created).UTC()
	return m, nil
}
