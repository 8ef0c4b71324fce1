// Package securestore is the device's secret store: the only place the
// session credential and the key-value encryption key are kept.
package securestore

import (
	"context"
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/common"
)

// Store holds opaque string secrets.
//
// Get returns common.ErrSecretNotFound when the key is absent. Deleting an
// absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Error describes a failed secret store operation.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("secret store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match common.ErrSecretStore.
func (e *Error) Is(target error) bool { return target == common.ErrSecretStore }
