package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Messages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveMessage(ctx, Message{ID: "m1", Name: "A", Email: "a@x.io", Message: "first", CreatedAt: base}))
	require.NoError(t, s.SaveMessage(ctx, Message{ID: "m2", Name: "B", Email: "b@x.io", Message: "second", RemoteHash: "abcd", CreatedAt: base.Add(time.Minute)}))

	msgs, err := s.ListMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "m2", msgs[0].ID)
	require.Equal(t, "abcd", msgs[0].RemoteHash)
	require.True(t, msgs[1].CreatedAt.Equal(base))

	n, err := s.CountMessages(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	require.NoError(t, s.DeleteMessage(ctx, "m1"))
	require.ErrorIs(t, s.DeleteMessage(ctx, "m1"), ErrNotFound)

	msgs, err = s.ListMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestStore_DuplicateMessageID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	m := Message{ID: "dup", Name: "A", Email: "a", Message: "m", CreatedAt: time.Now()}
	require.NoError(t, s.SaveMessage(ctx, m))
	require.Error(t, s.SaveMessage(ctx, m))
}

func TestStore_VisitsAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "h1", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "h1", Path: "/about", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "h2", Path: "/contact", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "h3", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}
	require.NoError(t, s.SaveMessage(ctx, Message{ID: "m1", Name: "A", Email: "a", Message: "m", CreatedAt: now}))

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.TotalMessages)
	require.EqualValues(t, 4, stats.TotalVisitors)
	require.EqualValues(t, 3, stats.UniqueVisitors)
	require.EqualValues(t, 2, stats.VisitorsToday)
	require.EqualValues(t, 3, stats.VisitorsThisWeek)
	require.Len(t, stats.RecentMessages, 1)
	require.Len(t, stats.RecentVisitors, 4)
	require.Equal(t, "/", stats.RecentVisitors[0].Path)

	removed, err := s.CleanupVisits(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	recent, err := s.RecentVisits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
}
