package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// AIRoutes handles the setup of assistant routes
type AIRoutes struct {
	handler *handlers.AIHandler
	jwt     *auth.JWTService
	limiter auth.RateLimiter
}

// NewAIRoutes creates a new AIRoutes instance
func NewAIRoutes(handler *handlers.AIHandler, jwt *auth.JWTService, limiter auth.RateLimiter) *AIRoutes {
	return &AIRoutes{handler: handler, jwt: jwt, limiter: limiter}
}

// RegisterRoutes registers all assistant routes
func (r *AIRoutes) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/ai")
	group.Use(middleware.RequireAuth(r.jwt), middleware.RateLimit(r.limiter, "ai"))
	{
		group.POST("/chat", r.handler.Chat)
		group.POST("/wizard", r.handler.Wizard)
	}
}
