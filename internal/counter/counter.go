// Package counter animates a number from 0 up to a target the first time it
// becomes visible.
package counter

import (
	"context"
	"math"
	"sync"
	"time"
)

// DefaultDuration is how long a counter takes to reach its target.
const DefaultDuration = 3 * time.Second

// Easing maps progress in [0,1] to an interpolation factor. Curves may
// overshoot 1 on the way.
type Easing func(p float64) float64

// EaseOutCubic decelerates smoothly into the target.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// EaseOutBack overshoots the target slightly before settling, like a spring.
func EaseOutBack(p float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	q := p - 1
	return 1 + c3*q*q*q + c1*q*q
}

type Option func(*Counter)

func WithDuration(d time.Duration) Option {
	return func(c *Counter) { c.duration = d }
}

func WithEasing(fn Easing) Option {
	return func(c *Counter) {
		if fn != nil {
			c.ease = fn
		}
	}
}

// Counter holds the display value of one animated number.
type Counter struct {
	mu       sync.Mutex
	target   int
	duration time.Duration
	ease     Easing

	revealed bool
	start    time.Time
	display  int
	done     bool
}

func New(target int, opts ...Option) *Counter {
	if target < 0 {
		target = 0
	}
	c := &Counter{
		target:   target,
		duration: DefaultDuration,
		ease:     EaseOutCubic,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Counter) Target() int { return c.target }

// Reveal marks the counter visible and starts the animation at now. Only the
// first call has any effect; it reports whether this call started it.
func (c *Counter) Reveal(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.revealed {
		return false
	}
	c.revealed = true
	c.start = now
	return true
}

func (c *Counter) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Tick samples the animation at now and returns the display value and whether
// the animation has finished. Interpolated values above the target are never
// written, and the display never moves backwards.
func (c *Counter) Tick(now time.Time) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.revealed || c.done {
		return c.display, c.done
	}

	elapsed := now.Sub(c.start)
	if elapsed >= c.duration {
		c.display = c.target
		c.done = true
		return c.display, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	p := float64(elapsed) / float64(c.duration)
	v := int(math.Round(c.ease(p) * float64(c.target)))
	if v <= c.target && v > c.display {
		c.display = v
	}
	return c.display, false
}

// Run drives Tick from ticks and calls emit whenever the display value
// changes. It returns nil once the animation is done or ticks is closed.
func (c *Counter) Run(ctx context.Context, ticks <-chan time.Time, emit func(int)) error {
	last := -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			v, done := c.Tick(now)
			if v != last {
				emit(v)
				last = v
			}
			if done {
				return nil
			}
		}
	}
}
