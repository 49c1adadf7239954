package database

import (
	"context"
	"fmt"

	"github.com/yourusername/sportology/internal/config"
)

// schema holds the tables the API needs. Statements are idempotent so
// startup can run them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		api_key VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_used TIMESTAMPTZ,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		request_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS usage_logs (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		api_key_id UUID REFERENCES api_keys(id) ON DELETE SET NULL,
		endpoint VARCHAR(100) NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
		success BOOLEAN NOT NULL DEFAULT TRUE,
		error_message TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_usage_logs_user_day ON usage_logs (user_id, timestamp)`,
	`CREATE TABLE IF NOT EXISTS demo_usage (
		id UUID PRIMARY KEY,
		client_ip VARCHAR(45) NOT NULL UNIQUE,
		count INTEGER NOT NULL DEFAULT 0,
		reset_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		sport VARCHAR(30) NOT NULL,
		birthdate VARCHAR(10),
		country VARCHAR(100),
		rank INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (name, sport)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_players_sport_name ON players (sport, name)`,
}

// Initialize creates a database connection pool and bootstraps the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.Bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Bootstrap applies the schema statements
func (db *DB) Bootstrap(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
