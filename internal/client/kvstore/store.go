// Package kvstore implements the fast on-device key-value stores.
//
// Reads are served from memory; every write goes synchronously through to
// the kv_entries table so the in-memory view and the durable one never
// diverge. An instance opened with an encryption key seals each value at rest.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sambulosenda/glamfric-mobile/internal/client/repositories/kv"
	"github.com/sambulosenda/glamfric-mobile/internal/cryptox"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

type item struct {
	kind kv.Kind
	raw  string
}

// Store is a single key-value instance. It is safe for concurrent use.
type Store struct {
	id     string
	repo   kv.Repository
	key    []byte
	logger logging.Logger

	mu   sync.RWMutex
	data map[string]item
}

// Open loads instance id from repo. A nil key opens the instance unencrypted.
func Open(ctx context.Context, id string, repo kv.Repository, key []byte, logger logging.Logger) (*Store, error) {
	s := &Store{
		id:     id,
		repo:   repo,
		key:    key,
		logger: logger.With("module", "kvstore", "instance", id),
		data:   make(map[string]item),
	}

	entries, err := repo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	for _, e := range entries {
		raw := e.Value
		if key != nil {
			raw, err = cryptox.Open(e.Value, key, entryAAD(id, e.Key))
			if err != nil {
				return nil, fmt.Errorf("open %s/%s: %w", id, e.Key, err)
			}
		}
		s.data[e.Key] = item{kind: e.Kind, raw: string(raw)}
	}

	s.logger.Debug(ctx, "instance loaded", "entries", len(entries), "encrypted", key != nil)
	return s, nil
}

// entryAAD binds a sealed value to the instance and key it was written under.
func entryAAD(id, key string) []byte {
	return []byte(id + "\x00" + key)
}

// NewMemory returns an instance that is never written to disk.
func NewMemory(id string) *Store {
	return &Store{
		id:     id,
		logger: logging.Discard(),
		data:   make(map[string]item),
	}
}

// ID returns the instance id.
func (s *Store) ID() string { return s.id }

func (s *Store) put(key string, it item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		value := []byte(it.raw)
		if s.key != nil {
			sealed, err := cryptox.Seal(value, s.key, entryAAD(s.id, key))
			if err != nil {
				return fmt.Errorf("seal %s/%s: %w", s.id, key, err)
			}
			value = sealed
		}
		e := kv.Entry{Key: key, Kind: it.kind, Value: value, UpdatedAt: time.Now()}
		if err := s.repo.Put(context.Background(), s.id, e); err != nil {
			return err
		}
	}

	s.data[key] = it
	return nil
}

func (s *Store) get(key string, kind kv.Kind) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.data[key]
	if !ok || it.kind != kind {
		return "", false
	}
	return it.raw, true
}

func (s *Store) SetString(key, value string) error {
	return s.put(key, item{kind: kv.KindString, raw: value})
}

func (s *Store) SetNumber(key string, value float64) error {
	return s.put(key, item{kind: kv.KindNumber, raw: strconv.FormatFloat(value, 'g', -1, 64)})
}

func (s *Store) SetBoolean(key string, value bool) error {
	return s.put(key, item{kind: kv.KindBoolean, raw: strconv.FormatBool(value)})
}

// GetString reports false when the key is absent or holds another kind.
func (s *Store) GetString(key string) (string, bool) {
	return s.get(key, kv.KindString)
}

func (s *Store) GetNumber(key string) (float64, bool) {
	raw, ok := s.get(key, kv.KindNumber)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *Store) GetBoolean(key string) (bool, bool) {
	raw, ok := s.get(key, kv.KindBoolean)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// SetJSON stores v as its JSON encoding under a string entry.
func (s *Store) SetJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.SetString(key, string(b))
}

// GetJSON decodes the string entry under key into dst.
func (s *Store) GetJSON(key string, dst any) (bool, error) {
	raw, ok := s.GetString(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Delete removes key. Absent keys are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Remove(context.Background(), s.id, key); err != nil {
			return err
		}
	}
	delete(s.data, key)
	return nil
}

func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Clear(context.Background(), s.id); err != nil {
			return err
		}
	}
	s.data = make(map[string]item)
	return nil
}

func (s *Store) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[key]
	return ok
}

// Keys returns every key in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
