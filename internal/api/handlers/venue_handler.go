package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/venue"
)

// VenueHandler handles HTTP requests for the venue directory
type VenueHandler struct {
	service venue.Service
}

// NewVenueHandler creates a new venue handler instance
func NewVenueHandler(service venue.Service) *VenueHandler {
	return &VenueHandler{service: service}
}

// ListVenues returns the directory. Public.
func (h *VenueHandler) ListVenues(c *gin.Context) {
	venues, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues, "total": len(venues)})
}

// CreateVenue adds a venue to the directory. Admin only.
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req venue.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	v, err := h.service.Create(c.Request.Context(), role, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// UpdateVenue applies a partial update to a venue. Admin only.
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue id"})
		return
	}

	var req venue.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	v, err := h.service.Update(c.Request.Context(), role, id, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DeleteVenue removes a venue. Admin only; refused while the venue still
// has upcoming bookings.
func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	role, exists := middleware.GetRole(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), role, id); err != nil {
		dto.RenderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
