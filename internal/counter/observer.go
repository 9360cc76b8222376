package counter

import (
	"sync"
	"time"
)

// Observer fires a callback the first time an element is reported as
// intersecting the viewport. Later reports for the same key are ignored.
type Observer struct {
	mu       sync.Mutex
	handlers map[string]func()
	fired    map[string]bool
}

func NewObserver() *Observer {
	return &Observer{
		handlers: make(map[string]func()),
		fired:    make(map[string]bool),
	}
}

func (o *Observer) Observe(key string, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers[key] = fn
}

// Intersect reports that key entered the viewport. It returns true only when
// this report fired the handler.
func (o *Observer) Intersect(key string) bool {
	o.mu.Lock()
	fn, ok := o.handlers[key]
	if !ok || o.fired[key] {
		o.mu.Unlock()
		return false
	}
	o.fired[key] = true
	o.mu.Unlock()

	fn()
	return true
}

// Stat is one labelled counter on the About page.
type Stat struct {
	Key    string
	Label  string
	Target int
	Suffix string
}

// Board is the set of counters shown on a single page view.
type Board struct {
	stats    []Stat
	counters map[string]*Counter
	observer *Observer
	now      func() time.Time
}

func NewBoard(stats []Stat, opts ...Option) *Board {
	b := &Board{
		stats:    stats,
		counters: make(map[string]*Counter, len(stats)),
		observer: NewObserver(),
		now:      time.Now,
	}
	for _, s := range stats {
		c := New(s.Target, opts...)
		b.counters[s.Key] = c
		b.observer.Observe(s.Key, func() { c.Reveal(b.now()) })
	}
	return b
}

func (b *Board) Stats() []Stat { return b.stats }

func (b *Board) Get(key string) (*Counter, bool) {
	c, ok := b.counters[key]
	return c, ok
}

// Reveal reports key as visible. started is false for unknown keys and for
// counters that were already revealed.
func (b *Board) Reveal(key string) (c *Counter, started bool) {
	c, ok := b.counters[key]
	if !ok {
		return nil, false
	}
	return c, b.observer.Intersect(key)
}
