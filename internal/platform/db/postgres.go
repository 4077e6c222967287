package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open initializes a PostgreSQL connection using database/sql and lib/pq.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres DSN")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		login TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
		login TEXT PRIMARY KEY REFERENCES users(login),
		retention_days INT NOT NULL DEFAULT 15
	)`,
	`CREATE TABLE IF NOT EXISTS boards (
		board_key TEXT PRIMARY KEY,
		login TEXT NOT NULL REFERENCES users(login),
		title TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS channels (
		channel_id BIGINT PRIMARY KEY,
		board_key TEXT NOT NULL REFERENCES boards(board_key),
		title TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS channel_daily_stats (
		channel_id BIGINT NOT NULL REFERENCES channels(channel_id),
		day DATE NOT NULL,
		enter BIGINT NOT NULL DEFAULT 0,
		leave BIGINT NOT NULL DEFAULT 0,
		request_count BIGINT NOT NULL DEFAULT 0,
		members_count BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (channel_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS invite_links (
		link_id BIGINT PRIMARY KEY,
		channel_id BIGINT NOT NULL REFERENCES channels(channel_id),
		title TEXT NOT NULL,
		price BIGINT,
		link_limit BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS invite_link_daily_stats (
		link_id BIGINT NOT NULL REFERENCES invite_links(link_id),
		day DATE NOT NULL,
		enter BIGINT NOT NULL DEFAULT 0,
		leave BIGINT NOT NULL DEFAULT 0,
		kick BIGINT NOT NULL DEFAULT 0,
		pending_requests BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (link_id, day)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_channel_daily_stats_day ON channel_daily_stats(day)`,
	`CREATE INDEX IF NOT EXISTS idx_invite_link_daily_stats_day ON invite_link_daily_stats(day)`,
}

// InitSchema creates the tables the collector writes into. Idempotent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema init: %w", err)
		}
	}
	return nil
}
