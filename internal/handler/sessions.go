package handler

import (
	"context"
	"errors"
	"net/http"

	"smv-nearby/internal/models"
	"smv-nearby/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes map sessions over HTTP
type SessionHandler struct {
	sessions SessionService
}

// SessionService interface for dependency injection
type SessionService interface {
	Open() string
	Snapshot(id string) (models.Snapshot, error)
	Refresh(ctx context.Context, id string, origin models.Coordinate) (models.Snapshot, error)
	Delete(id string) error
}

type locationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{sessions: svc}
}

// Create handles POST /sessions
//
//	@Summary	Open a map session
//	@Success	201	{object}	map[string]string
//	@Router		/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_id": h.sessions.Open()})
}

// Get handles GET /sessions/:id
//
//	@Summary	Current state of a map session
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	models.Snapshot
//	@Router		/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	snap, err := h.sessions.Snapshot(c.Param("id"))
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// UpdateLocation handles PUT /sessions/:id/location
//
//	@Summary	Move the user marker and refresh nearby places
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	models.Snapshot
//	@Router		/sessions/{id}/location [put]
func (h *SessionHandler) UpdateLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain numeric 'lat' and 'lon'"})
		return
	}

	origin := models.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	if err := origin.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.sessions.Refresh(c.Request.Context(), c.Param("id"), origin)
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Delete handles DELETE /sessions/:id
//
//	@Summary	Close a map session
//	@Param		id	path	string	true	"session id"
//	@Success	204
//	@Router		/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
