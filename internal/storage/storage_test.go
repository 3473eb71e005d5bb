package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestVisitorStats(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	visits := []Visitor{
		{HashedIP: "aaa", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aaa", Path: "/", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "bbb", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "ccc", Path: "/", Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}

	st, err := s.VisitorStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, VisitorStats{Total: 4, Unique: 3, Today: 2, ThisWeek: 3}, st)

	recent, err := s.RecentVisitors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, now.Add(-time.Hour).Unix(), recent[0].Timestamp.Unix())

	n, err := s.PurgeVisitorsBefore(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMessages(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Unix(1_700_000_000, 0)

	first, err := s.SaveMessage(ctx, Message{Name: "Ada", Email: "ada@example.com", Body: "hello", Created: base})
	require.NoError(t, err)
	_, err = s.SaveMessage(ctx, Message{Name: "Linus", Email: "l@example.com", Body: "hi", Created: base.Add(time.Minute)})
	require.NoError(t, err)
	require.NoError(t, s.MarkNotified(ctx, first))

	msgs, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Linus", msgs[0].Name)
	assert.False(t, msgs[0].Notified)
	assert.Equal(t, "Ada", msgs[1].Name)
	assert.True(t, msgs[1].Notified)

	count, err := s.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAdminStats(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.RecordVisit(ctx, Visitor{HashedIP: "x", Path: "/", Timestamp: now}))
	_, err := s.SaveMessage(ctx, Message{Name: "n", Email: "e@example.com", Body: "b", Created: now})
	require.NoError(t, err)

	st, err := s.AdminStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Total)
	assert.Equal(t, int64(1), st.TotalMessages)
	assert.Len(t, st.RecentVisitors, 1)
	assert.Len(t, st.RecentMessages, 1)
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.Ping(context.Background()))
}
