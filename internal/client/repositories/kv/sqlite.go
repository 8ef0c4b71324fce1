package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, instance string, e Entry) error {
	updatedAt := e.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	query := `INSERT INTO kv_entries (instance, key, kind, value, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(instance, key) DO UPDATE SET kind = excluded.kind,
				value = excluded.value,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, instance, e.Key, string(e.Kind), e.Value, updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert kv entry[%s/%s]: %w", instance, e.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, instance string) ([]Entry, error) {
	query := `SELECT key, kind, value, updated_at FROM kv_entries WHERE instance = ? ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to select kv entries[%s]: %w", instance, err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			item    Entry
			kind    string
			updated int64
		)
		if err := rows.Scan(&item.Key, &kind, &item.Value, &updated); err != nil {
			return nil, err
		}
		item.Kind = Kind(kind)
		item.UpdatedAt = time.UnixMilli(updated)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, instance, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE instance = ? AND key = ?`, instance, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv entry[%s/%s]: %w", instance, key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, instance string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE instance = ?`, instance)
	if err != nil {
		return fmt.Errorf("failed to clear kv entries[%s]: %w", instance, err)
	}
	return nil
}
