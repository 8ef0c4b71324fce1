package kv

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv_entries (
  instance   TEXT    NOT NULL,
  key        TEXT    NOT NULL,
  kind       TEXT    NOT NULL,
  value      BLOB    NOT NULL,
  updated_at INTEGER NOT NULL,
  PRIMARY KEY (instance, key)
);
`)
	require.NoError(t, err)

	return db
}

func TestPut_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	at := time.UnixMilli(1_700_000_000_000)

	require.NoError(t, r.Put(ctx, "app", Entry{Key: "k", Kind: KindString, Value: []byte("v1"), UpdatedAt: at}))
	require.NoError(t, r.Put(ctx, "app", Entry{Key: "k", Kind: KindNumber, Value: []byte("42"), UpdatedAt: at.Add(time.Second)}))

	var (
		kind    string
		value   []byte
		updated int64
		count   int
	)
	err := db.QueryRow(`SELECT kind, value, updated_at FROM kv_entries WHERE instance=? AND key=?`, "app", "k").
		Scan(&kind, &value, &updated)
	require.NoError(t, err)
	assert.Equal(t, "number", kind)
	assert.Equal(t, []byte("42"), value)
	assert.Equal(t, at.Add(time.Second).UnixMilli(), updated)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv_entries`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPut_ZeroUpdatedAtDefaultsToNow(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	before := time.Now().Add(-time.Second)

	require.NoError(t, r.Put(ctx, "app", Entry{Key: "k", Kind: KindBoolean, Value: []byte("true")}))

	list, err := r.List(ctx, "app")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].UpdatedAt.After(before))
}

func TestList_ScopedByInstanceAndOrdered(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "app", Entry{Key: "b", Kind: KindString, Value: []byte("2")}))
	require.NoError(t, r.Put(ctx, "app", Entry{Key: "a", Kind: KindString, Value: []byte("1")}))
	require.NoError(t, r.Put(ctx, "cache", Entry{Key: "c", Kind: KindString, Value: []byte("3")}))

	list, err := r.List(ctx, "app")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Key)
	assert.Equal(t, KindString, list[0].Kind)
	assert.Equal(t, "b", list[1].Key)

	empty, err := r.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRemoveAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "app", Entry{Key: "a", Kind: KindString, Value: []byte("1")}))
	require.NoError(t, r.Put(ctx, "app", Entry{Key: "b", Kind: KindString, Value: []byte("2")}))
	require.NoError(t, r.Put(ctx, "cache", Entry{Key: "a", Kind: KindString, Value: []byte("x")}))

	require.NoError(t, r.Remove(ctx, "app", "a"))
	require.NoError(t, r.Remove(ctx, "app", "missing"))

	list, err := r.List(ctx, "app")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Key)

	require.NoError(t, r.Clear(ctx, "app"))
	list, err = r.List(ctx, "app")
	require.NoError(t, err)
	assert.Empty(t, list)

	other, err := r.List(ctx, "cache")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	assert.ErrorContains(t, r.Put(ctx, "app", Entry{Key: "k"}), "failed to upsert kv entry[app/k]")
	_, err := r.List(ctx, "app")
	assert.ErrorContains(t, err, "failed to select kv entries[app]")
	assert.ErrorContains(t, r.Remove(ctx, "app", "k"), "failed to delete kv entry[app/k]")
	assert.ErrorContains(t, r.Clear(ctx, "app"), "failed to clear kv entries[app]")
}
