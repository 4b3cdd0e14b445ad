package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"smv-nearby/internal/geo"
	"smv-nearby/internal/models"
	"smv-nearby/internal/provider"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ResolverConfig tunes NearestPlaceResolver.
type ResolverConfig struct {
	DefaultRadiusKm float64
	Timeout         time.Duration
	CacheTTL        time.Duration
	H3Resolution    int
}

// DefaultResolverConfig matches the radius and timeout the map widget used.
var DefaultResolverConfig = ResolverConfig{
	DefaultRadiusKm: 3,
	Timeout:         10 * time.Second,
	CacheTTL:        10 * time.Minute,
	H3Resolution:    9,
}

// NearestPlaceResolver finds the closest place of a category around an origin.
// It always produces a result: provider failures turn into the category's
// synthetic fallback.
type NearestPlaceResolver struct {
	provider provider.Spatial
	cfg      ResolverConfig
	cache    *candidateCache
}

// NewNearestPlaceResolver creates a resolver over the given spatial provider.
func NewNearestPlaceResolver(p provider.Spatial, cfg ResolverConfig) *NearestPlaceResolver {
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = DefaultResolverConfig.DefaultRadiusKm
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultResolverConfig.Timeout
	}

	r := &NearestPlaceResolver{provider: p, cfg: cfg}
	if cfg.CacheTTL > 0 {
		r.cache = newCandidateCache(cfg.CacheTTL, cfg.H3Resolution)
	}
	return r
}

type candidatesResult struct {
	candidates []models.Candidate
	err        error
}

// Resolve returns the nearest place of category within radiusKm of origin.
// A non-positive radius uses the configured default.
func (r *NearestPlaceResolver) Resolve(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) models.ResolvedPlace {
	if radiusKm <= 0 {
		radiusKm = r.cfg.DefaultRadiusKm
	}

	candidates, ok := r.cache.get(origin, category, radiusKm)
	if !ok {
		var err error
		candidates, err = r.fetch(ctx, origin, category, radiusKm)
		if err != nil {
			kind := provider.KindOf(err)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				kind = provider.KindTransportFailure
			}
			log.Warn().
				Err(err).
				Str("category", string(category)).
				Str("kind", kind.String()).
				Msg("using fallback place")
			return FallbackPlace(origin, category, kind.String())
		}
		r.cache.put(origin, category, radiusKm, candidates)
	}

	nearest, ok := Nearest(origin, candidates)
	if !ok {
		return FallbackPlace(origin, category, provider.KindEmptyResult.String())
	}

	return models.ResolvedPlace{
		Category:   category,
		Name:       nearest.Name,
		Location:   nearest.Location,
		DistanceKm: nearest.DistanceKm,
		Source:     r.provider.Name(),
	}
}

// fetch calls the provider under the resolve timeout. It gives up when the
// deadline passes even if the provider ignores its context.
func (r *NearestPlaceResolver) fetch(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) ([]models.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	done := make(chan candidatesResult, 1)
	go func() {
		c, err := r.provider.Candidates(ctx, origin, category, radiusKm)
		done <- candidatesResult{candidates: c, err: err}
	}()

	select {
	case res := <-done:
		return res.candidates, res.err
	case <-ctx.Done():
		return nil, &provider.ProviderError{
			Kind:    provider.KindTransportFailure,
			Message: "resolve timed out",
			Err:     ctx.Err(),
		}
	}
}

// ResolveAll resolves every category concurrently.
func (r *NearestPlaceResolver) ResolveAll(ctx context.Context, origin models.Coordinate, radiusKm float64) map[models.PlaceCategory]models.ResolvedPlace {
	var (
		mu      sync.Mutex
		results = make(map[models.PlaceCategory]models.ResolvedPlace, len(models.Categories))
		g       errgroup.Group
	)

	for _, category := range models.Categories {
		g.Go(func() error {
			place := r.Resolve(ctx, origin, category, radiusKm)
			mu.Lock()
			results[category] = place
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Nearest ranks candidates by haversine distance from origin and returns the
// closest one with DistanceKm set. The input slice is not modified.
func Nearest(origin models.Coordinate, candidates []models.Candidate) (models.Candidate, bool) {
	if len(candidates) == 0 {
		return models.Candidate{}, false
	}

	ranked := make([]models.Candidate, len(candidates))
	for i, c := range candidates {
		c.DistanceKm = geo.HaversineKm(origin, c.Location)
		ranked[i] = c
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked[0], true
}

// FallbackPlace builds the deterministic synthetic place for category, placed
// at a fixed offset from origin.
func FallbackPlace(origin models.Coordinate, category models.PlaceCategory, reason string) models.ResolvedPlace {
	fb := category.Fallback()
	return models.ResolvedPlace{
		Category:       category,
		Name:           fb.Name,
		Location:       origin.Offset(fb.DLat, fb.DLon),
		DistanceKm:     fb.DistanceKm,
		Source:         models.SourceFallback,
		Synthetic:      true,
		FallbackReason: reason,
	}
}
