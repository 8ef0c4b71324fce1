package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/cryptox"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// KeyProvider yields the key of the encrypted key-value instance, generating
// and persisting it on first use. Concurrent callers share one generation.
type KeyProvider struct {
	secrets securestore.Store
	logger  logging.Logger

	group singleflight.Group
	mu    sync.Mutex
	key   []byte
}

func NewKeyProvider(secrets securestore.Store, logger logging.Logger) *KeyProvider {
	return &KeyProvider{secrets: secrets, logger: logger.With("module", "keys")}
}

// EncryptionKey returns a copy of the memoized key.
func (p *KeyProvider) EncryptionKey(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	if p.key != nil {
		k := append([]byte(nil), p.key...)
		p.mu.Unlock()
		return k, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do(common.EncryptionKeyKey, func() (any, error) {
		p.mu.Lock()
		if p.key != nil {
			k := p.key
			p.mu.Unlock()
			return k, nil
		}
		p.mu.Unlock()

		key, err := p.loadOrCreate(ctx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.key = key
		p.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), v.([]byte)...), nil
}

func (p *KeyProvider) loadOrCreate(ctx context.Context) ([]byte, error) {
	stored, err := p.secrets.Get(ctx, common.EncryptionKeyKey)
	switch {
	case err == nil:
		key, err := cryptox.ParseHexKey(stored)
		if err != nil {
			return nil, fmt.Errorf("stored encryption key: %w", err)
		}
		return key, nil
	case errors.Is(err, common.ErrSecretNotFound):
	default:
		return nil, fmt.Errorf("read encryption key: %w", err)
	}

	hexKey, err := cryptox.NewHexKey()
	if err != nil {
		return nil, fmt.Errorf("generate encryption key: %w", err)
	}
	if err := p.secrets.Set(ctx, common.EncryptionKeyKey, hexKey); err != nil {
		return nil, fmt.Errorf("persist encryption key: %w", err)
	}

	p.logger.Info(ctx, "encryption key generated")
	return cryptox.ParseHexKey(hexKey)
}
