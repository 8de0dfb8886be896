package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stillpoint/internal/analytics"
	"stillpoint/internal/repository"
)

func TestScoreCacheRoundTrip(t *testing.T) {
	cache := NewScoreCache(zap.NewNop())
	score := analytics.HappinessScore{Score: 594, Level: analytics.LevelBeginner}

	markers := []repository.ChangeMarker{
		{Count: 12, LastChanged: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)},
		{Count: 1, LastChanged: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
	}
	key := ChangeKey(markers)

	_, ok := cache.Get(7, key)
	require.False(t, ok)

	cache.Put(7, key, score)
	cached, ok := cache.Get(7, key)
	require.True(t, ok)
	require.Equal(t, score, cached)
}

func TestScoreCacheMissesWhenMarkersMove(t *testing.T) {
	cache := NewScoreCache(zap.NewNop())
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	before := ChangeKey([]repository.ChangeMarker{{Count: 5, LastChanged: base}})
	after := ChangeKey([]repository.ChangeMarker{{Count: 6, LastChanged: base.Add(time.Minute)}})
	require.NotEqual(t, before, after)

	cache.Put(7, before, analytics.HappinessScore{Score: 400})
	_, ok := cache.Get(7, after)
	require.False(t, ok)
}

func TestScoreCacheInvalidate(t *testing.T) {
	cache := NewScoreCache(zap.NewNop())
	key := ChangeKey(nil)
	cache.Put(7, key, analytics.HappinessScore{Score: 50})

	cache.Invalidate(7)
	_, ok := cache.Get(7, key)
	require.False(t, ok)
}
