// Package state provides the observable in-memory container behind the auth
// and preferences services.
package state

import "sync"

// Middleware observes every committed state. It runs under the container's
// write lock, so it must not call back into the same Store.
type Middleware[S any] func(next S)

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithClone sets the function used to copy the state whenever it leaves the
// container, through Get or to a subscriber. S values holding pointers, maps
// or slices need one so callers cannot reach the committed state.
func WithClone[S any](clone func(S) S) Option[S] {
	return func(s *Store[S]) { s.clone = clone }
}

// Store holds a value of S and notifies subscribers after each update.
//
// Subscribers are called one update at a time, in commit order. They may read
// the Store but must not call Update.
type Store[S any] struct {
	mu          sync.RWMutex
	state       S
	middlewares []Middleware[S]
	clone       func(S) S

	notifyMu sync.Mutex

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(S)
}

func New[S any](initial S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		state: initial,
		clone: func(v S) S { return v },
		subs:  make(map[int]func(S)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the current state.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.state)
}

// Update applies fn to the state, runs the middlewares on the result and then
// notifies subscribers.
func (s *Store[S]) Update(fn func(*S)) {
	s.mu.Lock()
	fn(&s.state)
	next := s.clone(s.state)
	for _, mw := range s.middlewares {
		mw(next)
	}
	// Taken before releasing mu so notifications follow commit order.
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.notify(next)
}

// Use registers a middleware for subsequent updates.
func (s *Store[S]) Use(mw Middleware[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middlewares = append(s.middlewares, mw)
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store[S]) notify(next S) {
	s.subMu.Lock()
	subs := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(s.clone(next))
	}
}
