package service

import (
	"context"
	"fmt"
	"strings"

	"smv-nearby/internal/models"
)

// PlaceSearchService looks up imported points of interest by name
type PlaceSearchService struct {
	repo PlaceSearchRepository
}

// PlaceSearchRepository interface for dependency injection
type PlaceSearchRepository interface {
	SearchPlacesByText(ctx context.Context, query string) ([]models.Place, error)
	GetPlaceByID(ctx context.Context, id int64) (*models.Place, error)
}

// NewPlaceSearchService creates a new place search service
func NewPlaceSearchService(repo PlaceSearchRepository) *PlaceSearchService {
	return &PlaceSearchService{repo: repo}
}

// Search finds places whose name contains the query
func (s *PlaceSearchService) Search(ctx context.Context, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("service: query cannot be empty")
	}

	places, err := s.repo.SearchPlacesByText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search places: %w", err)
	}

	return places, nil
}

// Get returns a single place, or nil when the id is unknown
func (s *PlaceSearchService) Get(ctx context.Context, id int64) (*models.Place, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service: invalid place id: %d", id)
	}

	place, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get place: %w", err)
	}

	return place, nil
}
