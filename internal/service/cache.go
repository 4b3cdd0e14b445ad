package service

import (
	"sync"
	"time"

	"smv-nearby/internal/geo"
	"smv-nearby/internal/models"

	"github.com/uber/h3-go/v4"
)

type cacheKey struct {
	cell     h3.Cell
	category models.PlaceCategory
	radiusM  int
}

type cacheEntry struct {
	candidates []models.Candidate
	expires    time.Time
}

// candidateCache keeps provider answers per H3 cell so that small moves of the
// user marker do not hit the provider again.
type candidateCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	resolution int
	entries    map[cacheKey]cacheEntry
	now        func() time.Time
}

func newCandidateCache(ttl time.Duration, resolution int) *candidateCache {
	return &candidateCache{
		ttl:        ttl,
		resolution: resolution,
		entries:    make(map[cacheKey]cacheEntry),
		now:        time.Now,
	}
}

func (c *candidateCache) key(origin models.Coordinate, category models.PlaceCategory, radiusKm float64) (cacheKey, bool) {
	cell, err := geo.Cell(origin, c.resolution)
	if err != nil {
		return cacheKey{}, false
	}
	return cacheKey{cell: cell, category: category, radiusM: int(radiusKm * 1000)}, true
}

func (c *candidateCache) get(origin models.Coordinate, category models.PlaceCategory, radiusKm float64) ([]models.Candidate, bool) {
	if c == nil {
		return nil, false
	}
	k, ok := c.key(origin, category, radiusKm)
	if !ok {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.candidates, true
}

func (c *candidateCache) put(origin models.Coordinate, category models.PlaceCategory, radiusKm float64, candidates []models.Candidate) {
	if c == nil || len(candidates) == 0 {
		return
	}
	k, ok := c.key(origin, category, radiusKm)
	if !ok {
		return
	}

	stored := make([]models.Candidate, len(candidates))
	copy(stored, candidates)

	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
		}
	}
	c.entries[k] = cacheEntry{candidates: stored, expires: now.Add(c.ttl)}
}
