package models

// Source values for ResolvedPlace.
const (
	SourceOverpass = "overpass"
	SourcePostGIS  = "postgis"
	SourceFallback = "fallback"
)

// Candidate is a place returned by a spatial provider. DistanceKm is filled in
// by the resolver once the origin is known.
type Candidate struct {
	Name       string     `json:"name"`
	Location   Coordinate `json:"location"`
	DistanceKm float64    `json:"distance_km"`
}

// ResolvedPlace is the nearest place chosen for an origin and category, either
// a real candidate or the category's synthetic fallback.
type ResolvedPlace struct {
	Category       PlaceCategory `json:"category"`
	Name           string        `json:"name"`
	Location       Coordinate    `json:"location"`
	DistanceKm     float64       `json:"distance_km"`
	Source         string        `json:"source"`
	Synthetic      bool          `json:"synthetic"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

// Place is a row of the local points-of-interest table.
type Place struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Category  PlaceCategory `json:"category"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
}

// Address is a human-readable description of a coordinate.
type Address struct {
	DisplayName string     `json:"display_name"`
	Location    Coordinate `json:"location"`
}
