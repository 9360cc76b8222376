// Package session keeps per-page-view state in memory, keyed by random ids.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

type options struct {
	maxEntries int
}

type Option func(*options)

// WithMaxEntries caps how many values are held at once. When full, Create
// drops expired entries and then the least recently seen one.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// Registry holds values created by a factory until they sit idle for ttl.
type Registry[T any] struct {
	mu      sync.Mutex
	items   map[string]*entry[T]
	ttl     time.Duration
	max     int
	factory func() T
	now     func() time.Time
}

func New[T any](ttl time.Duration, factory func() T, opts ...Option) *Registry[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		items:   make(map[string]*entry[T]),
		ttl:     ttl,
		max:     o.maxEntries,
		factory: factory,
		now:     time.Now,
	}
}

func (r *Registry[T]) Create() (string, T) {
	id := uuid.NewString()
	v := r.factory()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.items) >= r.max {
		r.sweepLocked()
		for len(r.items) >= r.max {
			r.evictOldestLocked()
		}
	}
	r.items[id] = &entry[T]{value: v, lastSeen: r.now()}
	return id, v
}

// Get looks up id and refreshes its idle timer.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || r.expired(e) {
		var zero T
		return zero, false
	}
	e.lastSeen = r.now()
	return e.value, true
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep drops expired entries and returns how many were removed.
func (r *Registry[T]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *Registry[T]) sweepLocked() int {
	n := 0
	for id, e := range r.items {
		if r.expired(e) {
			delete(r.items, id)
			n++
		}
	}
	return n
}

// Janitor sweeps every interval until ctx is done.
func (r *Registry[T]) Janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *Registry[T]) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range r.items {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(r.items, oldestID)
}

func (r *Registry[T]) expired(e *entry[T]) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}
