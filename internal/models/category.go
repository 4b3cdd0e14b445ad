package models

import (
	"fmt"
	"strings"
)

// PlaceCategory is a kind of point of interest shown next to the user marker.
type PlaceCategory string

const (
	School  PlaceCategory = "school"
	BusStop PlaceCategory = "bus_stop"
	Mall    PlaceCategory = "mall"
)

// Categories lists every category in display order.
var Categories = []PlaceCategory{School, BusStop, Mall}

// Fallback describes the synthetic place returned when no live data is available.
type Fallback struct {
	Name       string
	DistanceKm float64
	DLat       float64
	DLon       float64
}

type categoryInfo struct {
	tagKey   string
	tagValue string
	fallback Fallback
}

var categoryTable = map[PlaceCategory]categoryInfo{
	School: {
		tagKey:   "amenity",
		tagValue: "school",
		fallback: Fallback{Name: "APS Academy", DistanceKm: 1.1, DLat: 0.01, DLon: -0.01},
	},
	BusStop: {
		tagKey:   "highway",
		tagValue: "bus_stop",
		fallback: Fallback{Name: "Central Bus Terminal", DistanceKm: 0.7, DLat: -0.005, DLon: 0.008},
	},
	Mall: {
		tagKey:   "shop",
		tagValue: "mall",
		fallback: Fallback{Name: "City Center Mall", DistanceKm: 1.5, DLat: 0.007, DLon: 0.012},
	},
}

// ParseCategory maps a request value onto a PlaceCategory. The aliases used by
// the old map scripts are accepted too.
func ParseCategory(s string) (PlaceCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "school":
		return School, nil
	case "bus_stop", "bus_station", "bus":
		return BusStop, nil
	case "mall", "shopping_mall":
		return Mall, nil
	}
	return "", fmt.Errorf("unknown place category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c PlaceCategory) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Tag returns the OSM key/value pair selecting this category.
func (c PlaceCategory) Tag() (key, value string) {
	info := categoryTable[c]
	return info.tagKey, info.tagValue
}

// Filter returns the tag filter as written in provider queries, e.g. "amenity=school".
func (c PlaceCategory) Filter() string {
	k, v := c.Tag()
	return k + "=" + v
}

// Fallback returns the fixed synthetic place for this category.
func (c PlaceCategory) Fallback() Fallback {
	return categoryTable[c].fallback
}
