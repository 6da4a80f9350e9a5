package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/notezapp/notez/internal/client/migrations"
	"github.com/notezapp/notez/internal/client/repositories/cache"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded cache schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local cache database at dsn,
// applies migrations, and returns the cache repository bound to it.
func InitDatabase(ctx context.Context, dsn string) (cache.Repository, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return cache.NewSQLiteRepository(db), db, nil
}
