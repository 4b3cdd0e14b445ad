package service

import (
	"context"
	"fmt"

	"smv-nearby/internal/models"
)

// ReverseGeoCodeService turns coordinates into display addresses
type ReverseGeoCodeService struct {
	geocoder ReverseGeocoder
}

// ReverseGeocoder interface for dependency injection
type ReverseGeocoder interface {
	Reverse(ctx context.Context, c models.Coordinate) (*models.Address, error)
}

// NewReverseGeoCodeService creates a new reverse geo code service
func NewReverseGeoCodeService(geocoder ReverseGeocoder) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{geocoder: geocoder}
}

// ReverseGeocode finds the address nearest to the given coordinates. A nil
// address with a nil error means nothing is known there.
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Address, error) {
	coord := models.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	address, err := s.geocoder.Reverse(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("service: failed to reverse geocode: %w", err)
	}

	return address, nil
}
