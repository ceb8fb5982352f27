package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"voice-shopping-assistant/logger"
)

const schema = `
	CREATE TABLE IF NOT EXISTS shopping_list (
		seq        BIGSERIAL PRIMARY KEY,
		id         TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
		category   TEXT NOT NULL DEFAULT 'general',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// InitDB opens a pgx-backed connection pool and verifies it within timeout
func InitDB(ctx context.Context, connStr string, timeout time.Duration) (*sql.DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.S().Info("✓ Database connection established successfully")
	return conn, nil
}

// EnsureSchema creates the shopping_list table when missing
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB(conn *sql.DB) error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}
