package handler

import (
	"errors"
	"strconv"

	"smv-nearby/internal/models"

	"github.com/gin-gonic/gin"
)

// coordinateFromQuery reads and range-checks the lat/lon query parameters.
func coordinateFromQuery(c *gin.Context) (models.Coordinate, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		return models.Coordinate{}, errors.New("missing required query parameters 'lat' and 'lon'")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinate{}, errors.New("invalid latitude format")
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Coordinate{}, errors.New("invalid longitude format")
	}

	coord := models.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return models.Coordinate{}, err
	}
	return coord, nil
}

// radiusFromQuery reads the optional radius_km parameter; zero means the resolver default.
func radiusFromQuery(c *gin.Context) (float64, error) {
	raw := c.Query("radius_km")
	if raw == "" {
		return 0, nil
	}
	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 || radius > 50 {
		return 0, errors.New("invalid radius_km: must be a number in (0, 50]")
	}
	return radius, nil
}
