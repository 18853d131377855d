// Package db opens the local SQLite database and applies the embedded
// migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/mlapshin/storefront/internal/client/migrations"

	_ "modernc.org/sqlite"
)

// Init opens the database at dsn and brings its schema up to date.
func Init(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps in-memory databases coherent and avoids
	// SQLITE_BUSY on overlapping writes.
	conn.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return conn, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, conn, ".")
}
