// Package storage bootstraps the on-device stores: it opens the database,
// obtains the encryption key and opens both key-value instances, exposing them
// only once initialization has succeeded.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sambulosenda/glamfric-mobile/internal/client/kvstore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/repositories/kv"
	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager owns the primary and cache key-value instances.
type Manager struct {
	repo   kv.Repository
	keys   *KeyProvider
	logger logging.Logger

	group singleflight.Group

	mu      sync.RWMutex
	state   State
	lastErr error
	primary *kvstore.Store
	cache   *kvstore.Store
}

func NewManager(db *sql.DB, secrets securestore.Store, logger logging.Logger) *Manager {
	return NewManagerWithRepository(kv.NewSQLiteRepository(db), secrets, logger)
}

// NewManagerWithRepository builds a Manager over an arbitrary row store.
func NewManagerWithRepository(repo kv.Repository, secrets securestore.Store, logger logging.Logger) *Manager {
	return &Manager{
		repo:   repo,
		keys:   NewKeyProvider(secrets, logger),
		logger: logger.With("module", "storage"),
	}
}

// Init opens both instances. It returns immediately when already Ready;
// concurrent callers join the initialization in flight; a Failed manager
// retries.
func (m *Manager) Init(ctx context.Context) error {
	if m.State() == Ready {
		return nil
	}

	_, err, _ := m.group.Do("init", func() (any, error) {
		if m.State() == Ready {
			return nil, nil
		}
		m.setState(Initializing, nil)

		primary, cache, err := m.open(ctx)
		if err != nil {
			err = fmt.Errorf("%w: %w", common.ErrStorageInit, err)
			m.setState(Failed, err)
			m.logger.Error(ctx, "storage initialization failed", "error", err)
			return nil, err
		}

		m.mu.Lock()
		m.primary, m.cache = primary, cache
		m.state, m.lastErr = Ready, nil
		m.mu.Unlock()

		m.logger.Info(ctx, "storage ready")
		return nil, nil
	})
	return err
}

func (m *Manager) open(ctx context.Context) (*kvstore.Store, *kvstore.Store, error) {
	key, err := m.keys.EncryptionKey(ctx)
	if err != nil {
		return nil, nil, err
	}

	primary, err := kvstore.Open(ctx, common.AppStorageID, m.repo, key, m.logger)
	if err != nil {
		return nil, nil, err
	}
	cache, err := kvstore.Open(ctx, common.CacheStorageID, m.repo, nil, m.logger)
	if err != nil {
		return nil, nil, err
	}
	return primary, cache, nil
}

func (m *Manager) setState(s State, err error) {
	m.mu.Lock()
	m.state, m.lastErr = s, err
	m.mu.Unlock()
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the error of the last failed initialization.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Manager) Ready() bool { return m.State() == Ready }

// Primary returns the encrypted instance or common.ErrStorageNotInitialized.
func (m *Manager) Primary() (*kvstore.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Ready {
		return nil, common.ErrStorageNotInitialized
	}
	return m.primary, nil
}

// Cache returns the unencrypted cache instance or common.ErrStorageNotInitialized.
func (m *Manager) Cache() (*kvstore.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Ready {
		return nil, common.ErrStorageNotInitialized
	}
	return m.cache, nil
}
