package handler

import (
	"context"
	"net/http"

	"smv-nearby/internal/models"

	"github.com/gin-gonic/gin"
)

// NearbyHandler serves nearest-place lookups
type NearbyHandler struct {
	service NearbyService
}

// NearbyService interface for dependency injection
type NearbyService interface {
	Resolve(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) models.ResolvedPlace
	ResolveAll(ctx context.Context, origin models.Coordinate, radiusKm float64) map[models.PlaceCategory]models.ResolvedPlace
}

// NewNearbyHandler creates a new nearby handler
func NewNearbyHandler(svc NearbyService) *NearbyHandler {
	return &NearbyHandler{service: svc}
}

// Nearest handles GET /nearby requests
//
//	@Summary	Nearest place of one category
//	@Param		lat			query		number	true	"latitude"
//	@Param		lon			query		number	true	"longitude"
//	@Param		category	query		string	true	"school, bus_stop or mall"
//	@Param		radius_km	query		number	false	"search radius"
//	@Success	200			{object}	models.ResolvedPlace
//	@Router		/nearby [get]
func (h *NearbyHandler) Nearest(c *gin.Context) {
	origin, err := coordinateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw := c.Query("category")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'category'"})
		return
	}
	category, err := models.ParseCategory(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	radius, err := radiusFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.Resolve(c.Request.Context(), origin, category, radius))
}

// All handles GET /nearby/all requests
//
//	@Summary	Nearest place of every category
//	@Param		lat			query		number	true	"latitude"
//	@Param		lon			query		number	true	"longitude"
//	@Param		radius_km	query		number	false	"search radius"
//	@Success	200			{object}	map[string]models.ResolvedPlace
//	@Router		/nearby/all [get]
func (h *NearbyHandler) All(c *gin.Context) {
	origin, err := coordinateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	radius, err := radiusFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.service.ResolveAll(c.Request.Context(), origin, radius))
}
