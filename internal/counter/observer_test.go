package counter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObserver_FiresOncePerKey(t *testing.T) {
	o := NewObserver()
	calls := map[string]int{}
	o.Observe("a", func() { calls["a"]++ })
	o.Observe("b", func() { calls["b"]++ })

	require.True(t, o.Intersect("a"))
	require.False(t, o.Intersect("a"))
	require.True(t, o.Intersect("b"))
	require.False(t, o.Intersect("missing"))
	require.Equal(t, map[string]int{"a": 1, "b": 1}, calls)
}

func TestBoard_Reveal(t *testing.T) {
	b := NewBoard([]Stat{
		{Key: "clients", Label: "satisfied clients", Target: 10, Suffix: "+"},
		{Key: "projects", Label: "projects completed", Target: 30, Suffix: "+"},
	})
	b.now = func() time.Time { return epoch }

	c, started := b.Reveal("projects")
	require.True(t, started)
	require.True(t, c.Revealed())

	other, ok := b.Get("clients")
	require.True(t, ok)
	require.False(t, other.Revealed())

	again, started := b.Reveal("projects")
	require.False(t, started)
	require.Same(t, c, again)

	_, started = b.Reveal("nope")
	require.False(t, started)
	require.Len(t, b.Stats(), 2)
}
