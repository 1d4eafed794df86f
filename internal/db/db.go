package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

const (
	driverName = "sqlite"

	// memoryDSN keeps the database inside the process; it is gone on exit.
	memoryDSN = ":memory:"
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

const resultSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id     TEXT PRIMARY KEY,
	board_size  INTEGER NOT NULL,
	cross_name  TEXT NOT NULL,
	nought_name TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	turns       INTEGER NOT NULL,
	finished_at TEXT NOT NULL
);`

// OpenSession opens the in-memory database that holds the results of the
// current session and creates its schema.
func OpenSession(ctx context.Context) (*sqlx.DB, error) {
	pool, err := sqlx.Open(driverName, memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(0)

	if err := InitializeSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// InitializeSchema creates the tables if they do not exist.
func InitializeSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, resultSchema); err != nil {
		return fmt.Errorf("failed to create game_results table: %w", err)
	}

	slog.DebugContext(ctx, "Session database initialized and schema verified.")
	return nil
}
