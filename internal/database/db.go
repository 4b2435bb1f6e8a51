package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a Postgres connection pool used to archive snapshots.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	db.pool.Close()
}

// InitSchema creates the archive tables if they do not exist yet.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id          SERIAL PRIMARY KEY,
			fetched_at  TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS stories (
			snapshot_id  INT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			id           BIGINT NOT NULL,
			title        TEXT NOT NULL,
			url          TEXT,
			score        INT NOT NULL,
			author       TEXT NOT NULL,
			posted_at    TIMESTAMPTZ NOT NULL,
			num_comments INT NOT NULL,
			PRIMARY KEY (snapshot_id, id)
		);
		CREATE TABLE IF NOT EXISTS comments (
			snapshot_id INT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			id          BIGINT NOT NULL,
			story_id    BIGINT NOT NULL,
			author      TEXT,
			body        TEXT,
			posted_at   TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (snapshot_id, id)
		);
	`

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
