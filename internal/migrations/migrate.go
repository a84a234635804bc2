// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

const (
	sqliteDialect = "sqlite3"
	migrationsDir = "sql"
)

//go:embed sql/*.sql
var files embed.FS

// Up runs all pending migrations.
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(files)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}

// Version reports the schema version currently applied.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	goose.SetBaseFS(files)
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
