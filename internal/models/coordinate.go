package models

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the coordinate lies inside the WGS84 ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("invalid latitude: %f", c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("invalid longitude: %f", c.Lon)
	}
	return nil
}

// Offset shifts the coordinate by the given deltas in degrees. Latitude is
// clamped to the poles and longitude wraps around the antimeridian.
func (c Coordinate) Offset(dLat, dLon float64) Coordinate {
	lat := math.Max(-90, math.Min(90, c.Lat+dLat))

	lon := c.Lon + dLon
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}

	return Coordinate{Lat: lat, Lon: lon}
}

// String formats the coordinate the way the widget shows it before an address is known.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lon)
}
