package kv

import (
	"context"
	"time"
)

// Kind tags the primitive type a value was written with.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Entry is a single row of an instance.
type Entry struct {
	Key       string
	Kind      Kind
	Value     []byte
	UpdatedAt time.Time
}

// Repository describes persistence of instance-scoped key-value rows.
type Repository interface {
	// Put inserts or replaces the entry under (instance, e.Key).
	Put(ctx context.Context, instance string, e Entry) error

	// List returns every entry of the instance ordered by key.
	List(ctx context.Context, instance string) ([]Entry, error)

	// Remove deletes a single key. Absent keys are not an error.
	Remove(ctx context.Context, instance, key string) error

	// Clear deletes every entry of the instance.
	Clear(ctx context.Context, instance string) error
}
