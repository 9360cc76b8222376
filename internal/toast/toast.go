// Package toast keeps transient status notifications that can be replaced by
// id and dismiss themselves after a duration.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one notification. A zero Duration keeps it until it is replaced
// or dismissed.
type Toast struct {
	ID       string
	Kind     Kind
	Message  string
	Created  time.Time
	Duration time.Duration
}

func (t Toast) Expired(now time.Time) bool {
	return t.Duration > 0 && !now.Before(t.Created.Add(t.Duration))
}

type Option func(*Center)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// Center holds the toasts of one page view, oldest first.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

func NewCenter(opts ...Option) *Center {
	c := &Center{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Loading adds a sticky toast and returns its id.
func (c *Center) Loading(msg string) string {
	id := uuid.NewString()
	c.put(Toast{ID: id, Kind: KindLoading, Message: msg})
	return id
}

func (c *Center) Success(id, msg string, d time.Duration) {
	c.put(Toast{ID: id, Kind: KindSuccess, Message: msg, Duration: d})
}

func (c *Center) Error(id, msg string, d time.Duration) {
	c.put(Toast{ID: id, Kind: KindError, Message: msg, Duration: d})
}

// put replaces the toast with the same id in place, or appends it.
func (c *Center) put(t Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t.Created = c.now()
	for i := range c.toasts {
		if c.toasts[i].ID == t.ID {
			c.toasts[i] = t
			return
		}
	}
	c.toasts = append(c.toasts, t)
}

func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Active returns the toasts that have not expired, dropping the rest.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}
