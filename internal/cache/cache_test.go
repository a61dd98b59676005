package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGet_FreshThenStale(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }

	s.Put("markets?page=1", []int{1, 2, 3})

	v, ok := s.Get("markets?page=1", 90*time.Second)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, v)

	// Advance just under the TTL: still fresh.
	now = now.Add(89 * time.Second)
	_, ok = s.Get("markets?page=1", 90*time.Second)
	require.True(t, ok)

	// Advance past the TTL: behaves as absent, entry stays resident.
	now = now.Add(2 * time.Second)
	_, ok = s.Get("markets?page=1", 90*time.Second)
	require.False(t, ok)
	require.Equal(t, 1, s.Len())
}

func TestGet_PerCallTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return now }

	s.Put("global", "snapshot")
	now = now.Add(2 * time.Minute)

	// The same entry is stale for a short-TTL reader and fresh for a
	// long-TTL reader.
	_, ok := s.Get("global", 90*time.Second)
	require.False(t, ok)
	v, ok := s.Get("global", 300*time.Second)
	require.True(t, ok)
	require.Equal(t, "snapshot", v)
}

func TestPut_Overwrites(t *testing.T) {
	t.Parallel()

	s := New()
	s.Put("k", 1)
	s.Put("k", 2)

	v, ok := s.Get("k", time.Minute)
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, s.Len())
}

func TestGet_MissingKey(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok := s.Get("nope", time.Minute)
	require.False(t, ok)
}

func TestClear_PatternAndAll(t *testing.T) {
	t.Parallel()

	s := New()
	s.Put("markets?page=1", 1)
	s.Put("markets?page=2", 2)
	s.Put("global", 3)

	s.Clear("markets")
	require.Equal(t, 1, s.Len())
	_, ok := s.Get("global", time.Minute)
	require.True(t, ok)

	s.Clear("")
	require.Equal(t, 0, s.Len())
}
