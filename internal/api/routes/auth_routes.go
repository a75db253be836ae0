package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/handlers"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/middleware"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// AuthRoutes handles the setup of account-related routes
type AuthRoutes struct {
	handler *handlers.AuthHandler
	jwt     *auth.JWTService
	limiter auth.RateLimiter
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler, jwt *auth.JWTService, limiter auth.RateLimiter) *AuthRoutes {
	return &AuthRoutes{handler: handler, jwt: jwt, limiter: limiter}
}

// RegisterRoutes registers all account-related routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/auth")

	// Credential endpoints are rate limited by client IP.
	group.POST("/register", middleware.RateLimit(r.limiter, "auth"), r.handler.Register)
	group.POST("/login", middleware.RateLimit(r.limiter, "auth"), r.handler.Login)

	authed := group.Group("")
	authed.Use(middleware.RequireAuth(r.jwt))
	{
		authed.GET("/me", r.handler.Me)
		authed.PUT("/me", r.handler.UpdateProfile)
		authed.POST("/delete", r.handler.DeleteAccount)
		authed.POST("/set-role", r.handler.SetRole)
	}
}
