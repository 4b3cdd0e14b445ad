package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"smv-nearby/internal/models"

	"github.com/gin-gonic/gin"
)

// PlaceSearchHandler handles searches over the imported places
type PlaceSearchHandler struct {
	service PlaceSearchService
}

// PlaceSearchService interface for dependency injection
type PlaceSearchService interface {
	Search(context.Context, string) ([]models.Place, error)
	Get(context.Context, int64) (*models.Place, error)
}

// NewPlaceSearchHandler creates a new place search handler
func NewPlaceSearchHandler(svc PlaceSearchService) *PlaceSearchHandler {
	return &PlaceSearchHandler{service: svc}
}

// Search handles GET /places requests
//
//	@Summary	Search imported places by name
//	@Param		q	query	string	true	"name fragment"
//	@Success	200	{array}	models.Place
//	@Router		/places [get]
func (h *PlaceSearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	places, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, places)
}

// Get handles GET /places/:id requests
//
//	@Summary	Imported place by id
//	@Param		id	path		integer	true	"place id"
//	@Success	200	{object}	models.Place
//	@Router		/places/{id} [get]
func (h *PlaceSearchHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	place, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if place == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		return
	}

	c.JSON(http.StatusOK, place)
}
