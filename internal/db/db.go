// Package db provides PostgreSQL storage for scan results, known
// licenses and their categories, and license-text conversions.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema holds the CREATE TABLE statements for all summarizer tables.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS repo_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scans (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		scan_date DATE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS licenses (
		id INTEGER PRIMARY KEY,
		short_name TEXT NOT NULL UNIQUE,
		category_id INTEGER NOT NULL REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY,
		old_text TEXT NOT NULL UNIQUE,
		new_license_id INTEGER NOT NULL REFERENCES licenses(id)
	)`,
	`CREATE TABLE IF NOT EXISTS files (
		id BIGSERIAL PRIMARY KEY,
		scan_id UUID NOT NULL REFERENCES scans(id),
		filename TEXT NOT NULL,
		license_id INTEGER NOT NULL REFERENCES licenses(id),
		md5 TEXT NOT NULL DEFAULT '',
		sha1 TEXT NOT NULL DEFAULT '',
		sha256 TEXT NOT NULL DEFAULT '',
		UNIQUE (scan_id, filename)
	)`,
	`CREATE INDEX IF NOT EXISTS files_scan_id_idx ON files (scan_id)`,
}

// InitSchema creates all summarizer tables if they do not exist yet.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// ConfigValue returns the value stored under key in repo_config, or
// "" if the key is not present.
func (db *DB) ConfigValue(ctx context.Context, key string) (string, error) {
	var value string
	err := db.pool.QueryRow(ctx,
		`SELECT value FROM repo_config WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config value %s: %w", key, err)
	}
	return value, nil
}

// SetConfigValue inserts or updates a repo_config entry.
func (db *DB) SetConfigValue(ctx context.Context, key, value string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO repo_config (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set config value %s: %w", key, err)
	}
	return nil
}

// IsInitialized reports whether the database has been seeded with a
// project configuration.
func (db *DB) IsInitialized(ctx context.Context) bool {
	value, err := db.ConfigValue(ctx, "initialized")
	return err == nil && value == "yes"
}
