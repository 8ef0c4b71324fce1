package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/sambulosenda/glamfric-mobile/internal/client/migrations"
	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/filex"
)

// DatabaseFile is the name of the on-device database inside the data dir.
const DatabaseFile = "glamfric.db"

// RunMigrations brings the schema up to date. It is safe to call repeatedly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens (creating if needed) the database under dataDir and
// migrates it. An empty dataDir opens a private in-memory database.
func OpenDatabase(ctx context.Context, dataDir string) (*sql.DB, error) {
	dsn := ":memory:"
	if dataDir != "" {
		dir, err := filex.EnsurePrivateDir(dataDir)
		if err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dir, DatabaseFile)
	}

	db, err := dbx.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
