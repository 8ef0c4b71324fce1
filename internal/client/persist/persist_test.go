package persist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambulosenda/glamfric-mobile/internal/client/kvstore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/state"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

type fakeStorage struct {
	kv    *kvstore.Store
	ready bool
}

func (f *fakeStorage) Primary() (*kvstore.Store, error) {
	if !f.ready {
		return nil, common.ErrStorageNotInitialized
	}
	return f.kv, nil
}

type session struct {
	Name        string
	Count       int
	Loading     bool
	Err         string
	HasHydrated bool
}

type sessionSnapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func options() Options[session, sessionSnapshot] {
	return Options[session, sessionSnapshot]{
		Name:     "session",
		Project:  func(s session) sessionSnapshot { return sessionSnapshot{Name: s.Name, Count: s.Count} },
		Restore:  func(s *session, p sessionSnapshot) { s.Name, s.Count = p.Name, p.Count },
		Hydrated: func(s *session) { s.HasHydrated = true },
	}
}

func TestAttach_ReadyStorage_HydratesImmediately(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}
	require.NoError(t, storage.kv.SetString("session", `{"name":"ann","count":3}`))

	var hydrated session
	opts := options()
	opts.OnHydrate = func(s session) { hydrated = s }

	store := state.New(session{})
	p := Attach(store, storage, opts, logging.Discard())

	assert.Equal(t, Hydrated, p.Phase())
	got := store.Get()
	assert.Equal(t, "ann", got.Name)
	assert.Equal(t, 3, got.Count)
	assert.True(t, got.HasHydrated)
	assert.Equal(t, got, hydrated)
}

func TestRoundTrip_TransientFieldsNotPersisted(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}

	first := state.New(session{})
	Attach(first, storage, options(), logging.Discard())
	first.Update(func(s *session) {
		s.Name = "bob"
		s.Count = 9
		s.Loading = true
		s.Err = "boom"
	})

	raw, ok := storage.kv.GetString("session")
	require.True(t, ok)
	var blob map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &blob))
	assert.ElementsMatch(t, []string{"name", "count"}, keys(blob))

	second := state.New(session{})
	Attach(second, storage, options(), logging.Discard())
	got := second.Get()
	assert.Equal(t, "bob", got.Name)
	assert.Equal(t, 9, got.Count)
	assert.False(t, got.Loading)
	assert.Empty(t, got.Err)
}

func TestHydrate_MissingFieldKeepsDefault(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}
	require.NoError(t, storage.kv.SetString("session", `{"name":"old-version"}`))

	store := state.New(session{Count: 42})
	Attach(store, storage, options(), logging.Discard())

	got := store.Get()
	assert.Equal(t, "old-version", got.Name)
	assert.Equal(t, 42, got.Count)
}

func TestHydrate_CorruptBlobKeepsDefaults(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}
	require.NoError(t, storage.kv.SetString("session", `{broken`))

	store := state.New(session{Name: "default"})
	p := Attach(store, storage, options(), logging.Discard())

	assert.Equal(t, Hydrated, p.Phase())
	assert.Equal(t, "default", store.Get().Name)
	assert.True(t, store.Get().HasHydrated)
}

func TestHydrate_AbsentBlobStillMarksHydrated(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}

	store := state.New(session{})
	p := Attach(store, storage, options(), logging.Discard())

	assert.Equal(t, Hydrated, p.Phase())
	assert.True(t, store.Get().HasHydrated)
}

func TestNotReady_SkipsWritesUntilHydrated(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app")}
	require.NoError(t, storage.kv.SetString("session", `{"name":"stored","count":1}`))

	store := state.New(session{})
	p := Attach(store, storage, options(), logging.Discard())
	assert.Equal(t, AwaitingStorage, p.Phase())
	assert.False(t, store.Get().HasHydrated)

	p.Hydrate()
	assert.Equal(t, AwaitingStorage, p.Phase(), "hydrate is a no-op while storage is not ready")

	store.Update(func(s *session) { s.Count = 100 })
	storage.ready = true
	raw, _ := storage.kv.GetString("session")
	assert.JSONEq(t, `{"name":"stored","count":1}`, raw, "no write before hydration")

	p.Hydrate()
	assert.Equal(t, Hydrated, p.Phase())
	assert.Equal(t, "stored", store.Get().Name)

	store.Update(func(s *session) { s.Count = 2 })
	raw, _ = storage.kv.GetString("session")
	assert.JSONEq(t, `{"name":"stored","count":2}`, raw)
}

type owner struct {
	ID string `json:"id"`
}

type account struct {
	Owner *owner
}

type accountSnapshot struct {
	Owner *owner `json:"owner"`
}

func TestHydrate_DoesNotWriteThroughHandedOutPointers(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app")}
	require.NoError(t, storage.kv.SetString("account", `{"owner":{"id":"stored"}}`))

	store := state.New(account{})
	p := Attach(store, storage, Options[account, accountSnapshot]{
		Name:    "account",
		Project: func(a account) accountSnapshot { return accountSnapshot{Owner: a.Owner} },
		Restore: func(a *account, s accountSnapshot) { a.Owner = s.Owner },
	}, logging.Discard())

	store.Update(func(a *account) { a.Owner = &owner{ID: "live"} })
	before := store.Get()

	storage.ready = true
	p.Hydrate()

	assert.Equal(t, "live", before.Owner.ID)
	assert.Equal(t, "stored", store.Get().Owner.ID)
	assert.NotSame(t, before.Owner, store.Get().Owner)
}

func TestClear(t *testing.T) {
	storage := &fakeStorage{kv: kvstore.NewMemory("app"), ready: true}
	store := state.New(session{})
	p := Attach(store, storage, options(), logging.Discard())

	store.Update(func(s *session) { s.Name = "x" })
	require.True(t, storage.kv.Contains("session"))

	require.NoError(t, p.Clear())
	assert.False(t, storage.kv.Contains("session"))

	storage.ready = false
	assert.ErrorIs(t, p.Clear(), common.ErrStorageNotInitialized)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "awaiting-storage", AwaitingStorage.String())
	assert.Equal(t, "hydrated", Hydrated.String())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
