package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/review"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/rsvp"
)

// EventHandler handles HTTP requests for events, RSVPs and reviews
type EventHandler struct {
	events  event.Service
	rsvps   rsvp.Service
	reviews review.Service
}

// NewEventHandler creates a new event handler instance
func NewEventHandler(events event.Service, rsvps rsvp.Service, reviews review.Service) *EventHandler {
	return &EventHandler{events: events, rsvps: rsvps, reviews: reviews}
}

func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return uuid.Nil, false
	}
	return id, true
}

// CreateEvent creates an event owned by the caller.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	e, err := h.events.Create(c.Request.Context(), actor, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListEvents returns the events visible to the caller, anonymous included.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), middleware.GetViewer(c))
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// GetEvent returns one event with its aggregates.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	e, err := h.events.Get(c.Request.Context(), middleware.GetViewer(c), id)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// UpdateEvent applies a partial update.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	var patch event.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	e, err := h.events.Update(c.Request.Context(), actor, id, patch)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEvent removes an event with its RSVPs and reviews.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.events.Delete(c.Request.Context(), actor, id); err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetRSVP records, overwrites, or clears the caller's RSVP.
func (h *EventHandler) SetRSVP(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	// An absent body clears the reply, the same as {"status": null}.
	var req rsvp.SetRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		dto.RenderBindingError(c, err)
		return
	}

	effective, err := h.rsvps.Set(c.Request.Context(), userID, id, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": effective})
}

// ListAttendees returns the going and maybe replies with names.
func (h *EventHandler) ListAttendees(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	attendees, err := h.rsvps.ListAttendees(c.Request.Context(), actor, id)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendees": attendees, "total": len(attendees)})
}

// SubmitReview records or replaces the caller's review of an event.
func (h *EventHandler) SubmitReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	var req review.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	r, err := h.reviews.Submit(c.Request.Context(), userID, id, req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListReviews returns an event's reviews newest first.
func (h *EventHandler) ListReviews(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListForEvent(c.Request.Context(), id)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": len(reviews)})
}
