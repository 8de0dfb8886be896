package services

import (
	"hash/fnv"
	"strconv"
	"sync"

	"stillpoint/internal/analytics"
	"stillpoint/internal/repository"

	"go.uber.org/zap"
)

// ScoreCache memoizes the last composed happiness score per user, keyed by
// a hash of the input collections' change markers. Any record write moves a
// marker and therefore misses the cache; no storage-event listening needed.
type ScoreCache struct {
	log *zap.Logger

	mu      sync.Mutex
	entries map[uint]scoreEntry
}

type scoreEntry struct {
	key   uint64
	score analytics.HappinessScore
}

func NewScoreCache(log *zap.Logger) *ScoreCache {
	return &ScoreCache{
		log:     log,
		entries: make(map[uint]scoreEntry),
	}
}

// ChangeKey folds collection markers into one cache key.
func ChangeKey(markers []repository.ChangeMarker) uint64 {
	h := fnv.New64a()
	for _, m := range markers {
		h.Write([]byte(strconv.FormatInt(m.Count, 10)))
		h.Write([]byte(strconv.FormatInt(m.LastChanged.UnixNano(), 10)))
	}
	return h.Sum64()
}

// Get returns the cached score when the key still matches.
func (c *ScoreCache) Get(userID uint, key uint64) (analytics.HappinessScore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok || entry.key != key {
		return analytics.HappinessScore{}, false
	}
	c.log.Debug("Happiness score cache hit", zap.Uint("userID", userID))
	return entry.score, true
}

// Put stores a freshly composed score under its key.
func (c *ScoreCache) Put(userID uint, key uint64, score analytics.HappinessScore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = scoreEntry{key: key, score: score}
}

// Invalidate drops a user's entry, e.g. on account deletion.
func (c *ScoreCache) Invalidate(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
