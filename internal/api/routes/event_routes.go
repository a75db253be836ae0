package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// EventRoutes handles the setup of event, RSVP and review routes
type EventRoutes struct {
	handler *handlers.EventHandler
	jwt     *auth.JWTService
}

// NewEventRoutes creates a new EventRoutes instance
func NewEventRoutes(handler *handlers.EventHandler, jwt *auth.JWTService) *EventRoutes {
	return &EventRoutes{handler: handler, jwt: jwt}
}

// RegisterRoutes registers all event-related routes
func (r *EventRoutes) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/events")

	// Reads resolve the viewer when a token is present but never require one:
	// the visibility filter decides what an anonymous caller sees.
	reads := group.Group("")
	reads.Use(middleware.OptionalAuth(r.jwt))
	{
		reads.GET("", r.handler.ListEvents)
		reads.GET("/:id", r.handler.GetEvent)
		reads.GET("/:id/reviews", r.handler.ListReviews)
	}

	writes := group.Group("")
	writes.Use(middleware.RequireAuth(r.jwt))
	{
		writes.POST("", r.handler.CreateEvent)
		writes.PUT("/:id", r.handler.UpdateEvent)
		writes.DELETE("/:id", r.handler.DeleteEvent)

		writes.POST("/:id/rsvp", r.handler.SetRSVP)
		writes.GET("/:id/rsvps", r.handler.ListAttendees)
		writes.POST("/:id/review", r.handler.SubmitReview)
	}
}
