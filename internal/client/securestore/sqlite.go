package securestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sambulosenda/glamfric-mobile/internal/client/repositories/secrets"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/cryptox"
	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

const (
	saltKey  = "__salt"
	saltSize = 16
)

// ErrReservedKey is returned for keys the store uses for its own bookkeeping.
var ErrReservedKey = errors.New("reserved key")

// SQLiteStore seals every value with AES-GCM under a key derived from the
// device secret and a per-database salt.
type SQLiteStore struct {
	repo   secrets.Repository
	key    []byte
	logger logging.Logger
}

// OpenSQLiteStore prepares the wrapping key, creating the salt on first use.
func OpenSQLiteStore(ctx context.Context, db *sql.DB, deviceSecret []byte, logger logging.Logger) (*SQLiteStore, error) {
	var salt []byte

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := secrets.NewSQLiteRepository(tx)

		existing, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}
		if existing != nil {
			salt = existing
			return nil
		}

		salt = common.GenerateRandByteArray(saltSize)
		return repo.Set(ctx, saltKey, salt)
	})
	if err != nil {
		return nil, &Error{Op: "open", Key: saltKey, Err: err}
	}

	return &SQLiteStore{
		repo:   secrets.NewSQLiteRepository(db),
		key:    cryptox.DeriveKey(deviceSecret, salt),
		logger: logger.With("module", "securestore"),
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	if key == saltKey {
		return "", &Error{Op: "get", Key: key, Err: ErrReservedKey}
	}

	sealed, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	if sealed == nil {
		return "", common.ErrSecretNotFound
	}

	plain, err := cryptox.Open(sealed, s.key, []byte(key))
	if err != nil {
		return "", &Error{Op: "get", Key: key, Err: fmt.Errorf("open: %w", err)}
	}
	return string(plain), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if key == saltKey {
		return &Error{Op: "set", Key: key, Err: ErrReservedKey}
	}

	sealed, err := cryptox.Seal([]byte(value), s.key, []byte(key))
	if err != nil {
		return &Error{Op: "set", Key: key, Err: fmt.Errorf("seal: %w", err)}
	}
	if err := s.repo.Set(ctx, key, sealed); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}

	s.logger.Debug(ctx, "secret stored", "key", key)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if key == saltKey {
		return &Error{Op: "delete", Key: key, Err: ErrReservedKey}
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}
