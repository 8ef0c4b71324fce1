package kvstore

import (
	"encoding/json"
	"fmt"
	"time"
)

type cacheEntry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
	TTL       *int64          `json:"ttl,omitempty"`
}

// Cache stores JSON values with an optional time-to-live on top of an
// unencrypted instance. Expired entries are dropped when read.
type Cache struct {
	store *Store
	now   func() time.Time
}

func NewCache(store *Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// WithClock replaces the time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Set stores v under key. A ttl of zero never expires.
func (c *Cache) Set(key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}

	e := cacheEntry{Value: b, Timestamp: c.now().UnixMilli()}
	if ttl > 0 {
		ms := ttl.Milliseconds()
		e.TTL = &ms
	}
	return c.store.SetJSON(key, e)
}

// Get decodes the entry under key into dst and reports whether a fresh entry
// was found.
func (c *Cache) Get(key string, dst any) (bool, error) {
	var e cacheEntry
	ok, err := c.store.GetJSON(key, &e)
	if err != nil || !ok {
		return false, err
	}

	if e.TTL != nil && c.now().UnixMilli()-e.Timestamp > *e.TTL {
		if err := c.store.Delete(key); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := json.Unmarshal(e.Value, dst); err != nil {
		return false, fmt.Errorf("unmarshal cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) Remove(key string) error {
	return c.store.Delete(key)
}

func (c *Cache) Clear() error {
	return c.store.ClearAll()
}
