// Package persist mirrors a state.Store into the primary key-value instance
// and restores it on startup.
//
// Only the declared projection type P is written; anything not reachable
// from P stays in memory. Restoring decodes the stored JSON on top of the
// projection of the current state, so fields absent from an older blob keep
// their in-memory defaults.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/sambulosenda/glamfric-mobile/internal/client/kvstore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/state"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// Storage yields the primary instance once it is ready.
type Storage interface {
	Primary() (*kvstore.Store, error)
}

type Phase int32

const (
	Created Phase = iota
	AwaitingStorage
	Hydrated
)

func (p Phase) String() string {
	switch p {
	case Created:
		return "created"
	case AwaitingStorage:
		return "awaiting-storage"
	case Hydrated:
		return "hydrated"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

type Options[S, P any] struct {
	// Name is the key the snapshot is stored under.
	Name string
	// Project extracts the durable part of a state.
	Project func(S) P
	// Restore writes a projection back into a state.
	Restore func(*S, P)
	// Hydrated, if set, marks hydration inside the restoring update.
	Hydrated func(*S)
	// OnHydrate, if set, is called with the state after hydration.
	OnHydrate func(S)
}

type Persister[S, P any] struct {
	store   *state.Store[S]
	storage Storage
	opts    Options[S, P]
	logger  logging.Logger
	phase   atomic.Int32
}

// Attach registers the persisting middleware on store. When storage is
// already usable the store is hydrated immediately; otherwise the caller
// invokes Hydrate once storage is ready.
func Attach[S, P any](store *state.Store[S], storage Storage, opts Options[S, P], logger logging.Logger) *Persister[S, P] {
	p := &Persister[S, P]{
		store:   store,
		storage: storage,
		opts:    opts,
		logger:  logger.With("module", "persist", "name", opts.Name),
	}
	store.Use(p.write)

	if _, err := storage.Primary(); err != nil {
		p.phase.Store(int32(AwaitingStorage))
		return p
	}
	p.Hydrate()
	return p
}

func (p *Persister[S, P]) Phase() Phase {
	return Phase(p.phase.Load())
}

// write runs under the store's lock. Snapshots are only written after
// hydration so an early update cannot clobber the stored one.
func (p *Persister[S, P]) write(next S) {
	if p.Phase() != Hydrated {
		return
	}

	kv, err := p.storage.Primary()
	if err != nil {
		return
	}

	b, err := json.Marshal(p.opts.Project(next))
	if err != nil {
		p.logger.Error(context.Background(), "failed to encode snapshot", "error", err)
		return
	}
	if err := kv.SetString(p.opts.Name, string(b)); err != nil {
		p.logger.Error(context.Background(), "failed to persist snapshot", "error", err)
	}
}

// Hydrate restores the stored snapshot, if any, and marks the store hydrated.
// It is a no-op while storage is not ready.
func (p *Persister[S, P]) Hydrate() {
	ctx := context.Background()

	kv, err := p.storage.Primary()
	if err != nil {
		p.logger.Warn(ctx, "hydration skipped, storage not ready", "error", err)
		return
	}

	raw, found := kv.GetString(p.opts.Name)
	p.phase.Store(int32(Hydrated))

	p.store.Update(func(s *S) {
		if found {
			proj, err := p.decode(*s, raw)
			if err != nil {
				p.logger.Error(ctx, "discarding unreadable snapshot", "error", err)
			} else {
				p.opts.Restore(s, proj)
			}
		}
		if p.opts.Hydrated != nil {
			p.opts.Hydrated(s)
		}
	})

	p.logger.Debug(ctx, "hydrated", "found", found)
	if p.opts.OnHydrate != nil {
		p.opts.OnHydrate(p.store.Get())
	}
}

// Clear removes the stored snapshot.
func (p *Persister[S, P]) Clear() error {
	kv, err := p.storage.Primary()
	if err != nil {
		return err
	}
	return kv.Delete(p.opts.Name)
}

// decode unmarshals raw on top of a detached copy of the projection of cur.
// The copy goes through JSON so that no pointer in the result is shared with
// cur or with states already handed out by the store.
func (p *Persister[S, P]) decode(cur S, raw string) (P, error) {
	var proj P
	base, err := json.Marshal(p.opts.Project(cur))
	if err != nil {
		return proj, err
	}
	if err := json.Unmarshal(base, &proj); err != nil {
		return proj, err
	}
	err = json.Unmarshal([]byte(raw), &proj)
	return proj, err
}
