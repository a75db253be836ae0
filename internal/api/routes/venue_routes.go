package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// VenueRoutes handles the setup of venue directory routes
type VenueRoutes struct {
	handler *handlers.VenueHandler
	jwt     *auth.JWTService
}

// NewVenueRoutes creates a new VenueRoutes instance
func NewVenueRoutes(handler *handlers.VenueHandler, jwt *auth.JWTService) *VenueRoutes {
	return &VenueRoutes{handler: handler, jwt: jwt}
}

// RegisterRoutes registers all venue-related routes
func (r *VenueRoutes) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/venues")
	group.GET("", r.handler.ListVenues)

	admin := group.Group("")
	admin.Use(middleware.RequireAuth(r.jwt))
	{
		admin.POST("", r.handler.CreateVenue)
		admin.PUT("/:id", r.handler.UpdateVenue)
		admin.DELETE("/:id", r.handler.DeleteVenue)
	}
}
