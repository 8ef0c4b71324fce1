// Package kv provides the on-device table behind the key-value stores.
//
// # Overview
//
// Rows are scoped by instance id ("app-storage", "cache-storage") so several
// independent stores share one kv_entries table. Each row carries a kind tag
// (string, number, boolean) and an opaque value blob; whether that blob is
// encrypted is decided by the caller.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Put(ctx, "app-storage", kv.Entry{Key: "k", Kind: kv.KindString, Value: blob})
//	all, _ := repo.List(ctx, "app-storage")
//	_ = repo.Remove(ctx, "app-storage", "k")
//	_ = repo.Clear(ctx, "app-storage")
package kv
