package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/server/migrations"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/businesses"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/users"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/verifications"
)

type SQLiteManager struct{}

func NewSQLiteManager() *SQLiteManager {
	return &SQLiteManager{}
}

func (m *SQLiteManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func (m *SQLiteManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteManager) Verifications(db dbx.DBTX) verifications.Repository {
	return verifications.NewSQLiteRepository(db)
}

func (m *SQLiteManager) Businesses(db dbx.DBTX) businesses.Repository {
	return businesses.NewSQLiteRepository(db)
}

// Open opens the database at dsn and migrates it.
func (m *SQLiteManager) Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := dbx.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
