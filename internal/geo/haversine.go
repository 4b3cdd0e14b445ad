// Package geo holds the spherical math used to rank nearby places.
package geo

import (
	"fmt"
	"math"

	"smv-nearby/internal/models"

	"github.com/uber/h3-go/v4"
)

// EarthRadiusKm is the mean Earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// HaversineKm returns the great-circle distance between a and b in kilometres.
func HaversineKm(a, b models.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Cell returns the H3 cell containing c at the given resolution.
func Cell(c models.Coordinate, res int) (h3.Cell, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(c.Lat, c.Lon), res)
	if err != nil {
		return 0, fmt.Errorf("geo: h3 cell at res %d: %w", res, err)
	}
	return cell, nil
}
