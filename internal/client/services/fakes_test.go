package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sambulosenda/glamfric-mobile/internal/client/kvstore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
	"github.com/sambulosenda/glamfric-mobile/internal/client/repositories/kv"
	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginRet *models.LoginResult
	LoginErr error
	// LoginEntered, if set, receives a value when Login starts; Login then
	// waits for LoginRelease.
	LoginEntered chan struct{}
	LoginRelease chan struct{}

	SignupRet *models.SignupResult
	SignupErr error

	VerifyRet *models.VerifyResult
	VerifyErr error

	ResendRet *models.VerifyResult
	ResendErr error

	ClearStoreErr error

	LoginCalls      int
	LastLoginEmail  string
	LastLoginPass   string
	LastSignupName  string
	LastVerifyToken string
	ClearStoreCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	f.mu.Lock()
	f.LoginCalls++
	f.LastLoginEmail, f.LastLoginPass = email, password
	entered, release := f.LoginEntered, f.LoginRelease
	ret, err := f.LoginRet, f.LoginErr
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}
	return ret, err
}

func (f *fakeClient) Signup(ctx context.Context, email, password, name string) (*models.SignupResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastSignupName = name
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) VerifyEmail(ctx context.Context, token string) (*models.VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastVerifyToken = token
	if f.VerifyRet == nil {
		return nil, f.VerifyErr
	}
	res := *f.VerifyRet
	return &res, f.VerifyErr
}

func (f *fakeClient) ResendVerification(ctx context.Context, email string) (*models.VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ResendRet, f.ResendErr
}

func (f *fakeClient) SearchBusinesses(ctx context.Context, input models.SearchBusinessesInput) (*models.BusinessSearchResult, error) {
	return &models.BusinessSearchResult{}, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) ClearStore() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearStoreCalls++
	return f.ClearStoreErr
}

// ---- fake secrets ----

type fakeSecrets struct {
	*securestore.MemoryStore
	SetErr    error
	DeleteErr error
}

func newFakeSecrets() *fakeSecrets {
	return &fakeSecrets{MemoryStore: securestore.NewMemoryStore()}
}

func (f *fakeSecrets) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

// Delete reports DeleteErr after removing the key, the way a store that
// fails to confirm a write would.
func (f *fakeSecrets) Delete(ctx context.Context, key string) error {
	if err := f.MemoryStore.Delete(ctx, key); err != nil {
		return err
	}
	return f.DeleteErr
}

// ---- fake storage ----

type fakeStorage struct {
	kv  *kvstore.Store
	err error
}

func (f *fakeStorage) Primary() (*kvstore.Store, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.kv, nil
}

func readyStorage() *fakeStorage {
	return &fakeStorage{kv: kvstore.NewMemory(common.AppStorageID)}
}

func notReadyStorage() *fakeStorage {
	return &fakeStorage{kv: kvstore.NewMemory(common.AppStorageID), err: common.ErrStorageNotInitialized}
}

// memRepo is a kv.Repository held in memory whose Remove can be made to fail.
type memRepo struct {
	mu        sync.Mutex
	rows      map[string]kv.Entry
	RemoveErr error
}

func (m *memRepo) Put(_ context.Context, _ string, e kv.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]kv.Entry{}
	}
	m.rows[e.Key] = e
	return nil
}

func (m *memRepo) List(context.Context, string) ([]kv.Entry, error) { return nil, nil }

func (m *memRepo) Remove(_ context.Context, _ string, key string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, key)
	return nil
}

func (m *memRepo) Clear(context.Context, string) error { return nil }

func failingDeleteStorage(t *testing.T, err error) *fakeStorage {
	t.Helper()
	store, openErr := kvstore.Open(context.Background(), common.AppStorageID, &memRepo{RemoveErr: err}, nil, logging.Discard())
	require.NoError(t, openErr)
	return &fakeStorage{kv: store}
}
