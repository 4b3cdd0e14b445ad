package provider

import (
	"context"

	"smv-nearby/internal/models"
)

// PlaceRepository is the subset of the places repository the PostGIS provider needs.
type PlaceRepository interface {
	FindPlacesWithin(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusM float64) ([]models.Place, error)
}

// PostGISProvider serves candidates from the locally imported places table.
type PostGISProvider struct {
	repo PlaceRepository
}

// NewPostGISProvider creates a provider backed by repo.
func NewPostGISProvider(repo PlaceRepository) *PostGISProvider {
	return &PostGISProvider{repo: repo}
}

// Name implements Spatial.
func (p *PostGISProvider) Name() string {
	return models.SourcePostGIS
}

// Candidates implements Spatial.
func (p *PostGISProvider) Candidates(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) ([]models.Candidate, error) {
	places, err := p.repo.FindPlacesWithin(ctx, origin, category, radiusKm*1000)
	if err != nil {
		return nil, transportError("postgis lookup failed", err)
	}

	candidates := make([]models.Candidate, 0, len(places))
	for _, pl := range places {
		if pl.Name == "" {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Name:     pl.Name,
			Location: models.Coordinate{Lat: pl.Latitude, Lon: pl.Longitude},
		})
	}
	if len(candidates) == 0 {
		return nil, emptyResult("no " + string(category) + " rows within radius")
	}

	return candidates, nil
}
