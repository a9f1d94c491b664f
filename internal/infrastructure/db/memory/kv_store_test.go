package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKVStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v2", v)

	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "k"))
	require.Equal(t, 0, s.Len())
}

func TestSubmitGuard_HoldsUntilReleaseOrExpiry(t *testing.T) {
	ctx := context.Background()
	g := NewSubmitGuard()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	ok, err := g.Acquire(ctx, "approve:1", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _ = g.Acquire(ctx, "approve:1", 5*time.Second)
	require.False(t, ok, "second acquire while held")

	now = now.Add(6 * time.Second)
	ok, _ = g.Acquire(ctx, "approve:1", 5*time.Second)
	require.True(t, ok, "expired key can be reacquired")

	require.NoError(t, g.Release(ctx, "approve:1"))
	ok, _ = g.Acquire(ctx, "approve:1", 5*time.Second)
	require.True(t, ok)
}
